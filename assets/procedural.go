package assets

import "github.com/phanxgames/raycaster"

// Checker returns a size x size image of cell x cell squares alternating
// between a and b, starting with a in the top-left corner.
func Checker(size, cell int, a, b raycaster.Color) (*raycaster.Image, error) {
	img, err := raycaster.NewImage(size, size)
	if err != nil {
		return nil, err
	}
	cell = max(cell, 1)
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			c := a
			if (x/cell+y/cell)%2 == 1 {
				c = b
			}
			img.Set(x, y, c)
		}
	}
	return img, nil
}

// Bricks returns a width x height brick pattern: rows of bricks rows high,
// offset by half a brick on alternate rows, separated by one-pixel mortar
// lines.
func Bricks(width, height, rows int, brick, mortar raycaster.Color) (*raycaster.Image, error) {
	img, err := raycaster.NewImage(width, height)
	if err != nil {
		return nil, err
	}
	rows = max(rows, 1)
	rowH := max(height/rows, 2)
	brickW := max(rowH*2, 2)
	for y := 0; y < height; y++ {
		row := y / rowH
		shift := 0
		if row%2 == 1 {
			shift = brickW / 2
		}
		for x := 0; x < width; x++ {
			c := brick
			if y%rowH == 0 || (x+shift)%brickW == 0 {
				c = mortar
			}
			img.Set(x, y, c)
		}
	}
	return img, nil
}
