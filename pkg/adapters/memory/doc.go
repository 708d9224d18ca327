// Package memory provides an in-process session store for single-replica use and tests.
package memory
