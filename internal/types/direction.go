package types

// Direction drives which duplication or move branch applies.
type Direction int

const (
	Up Direction = iota
	Down
	SelectionDown
	SelectionUp
	Left
	Right
	RightDown
)

var directionNames = [...]string{
	Up:            "Up",
	Down:          "Down",
	SelectionDown: "SelectionDown",
	SelectionUp:   "SelectionUp",
	Left:          "Left",
	Right:         "Right",
	RightDown:     "RightDown",
}

func (d Direction) String() string {
	if d < 0 || int(d) >= len(directionNames) {
		return "Unknown"
	}
	return directionNames[d]
}

// Valid reports whether d is one of the defined directions.
func (d Direction) Valid() bool {
	return d >= Up && d <= RightDown
}
