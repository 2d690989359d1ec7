// Package main provides the profilekit CLI for flattening and minimizing
// slicer configuration profiles.
package main

func main() {
	Execute()
}
