// Command brepctl builds, inspects, meshes and exports solid models
// described by YAML recipes.
package main

func main() {
	execute()
}
