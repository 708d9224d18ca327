/*
Package domain contains the core types of the swap-sequence player.

It describes the solution produced by the solver and the state that playback
mutates. The package is pure: no I/O and no persistence.

# Key Entities

  - Step / StepSequence: a tagged swap or sentinel, parsed once from the solver payload.
  - SoddiList: the ordered desired interactions typed by the user.
  - Permutation: the slot <-> label bijection, changed only through Swap.
  - Cursor: step index and number of interactions reached.
  - Session: the persisted snapshot of one player.
  - Effect: the data form of a renderer command.
*/
package domain
