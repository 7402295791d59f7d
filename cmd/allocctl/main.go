// Command allocctl inspects the guarded block layout used by debug builds of
// the memory package and exercises its corruption detection.
package main

func main() {
	execute()
}
