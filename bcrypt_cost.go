//go:build !race

package jobboard

func passwordHashCost() int {
	return 14
}
