// Command rbhmctl drives an rbhashmap from the command line.
package main

func main() {
	execute()
}
