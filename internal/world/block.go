package world

// BlockType identifies what occupies a cube cell. The zero value is air.
type BlockType uint16

const (
	BlockTypeAir BlockType = iota
	BlockTypeStone
	BlockTypeDirt
	BlockTypeGrass
	blockTypeCount
)

var blockNames = [...]string{
	BlockTypeAir:   "air",
	BlockTypeStone: "stone",
	BlockTypeDirt:  "dirt",
	BlockTypeGrass: "grass",
}

// IsSolid reports whether the block occludes its neighbours' faces.
func (b BlockType) IsSolid() bool {
	return b != BlockTypeAir
}

// Valid reports whether b is a known block type.
func (b BlockType) Valid() bool {
	return b < blockTypeCount
}

func (b BlockType) String() string {
	if !b.Valid() {
		return "unknown"
	}
	return blockNames[b]
}
