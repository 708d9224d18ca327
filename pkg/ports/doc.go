/*
Package ports defines the driven ports (interfaces) of the player.

# Key Interfaces

  - Renderer: receives the visual effects of playback.
  - Solver: computes solutions and random puzzles (remote HTTP in production).
  - SessionStore: persists session snapshots.
  - DistributedLocker: serializes access to a session across replicas.
*/
package ports
