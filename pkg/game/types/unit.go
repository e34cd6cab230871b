package types

// UnitType is the unit kind string used on the wire.
type UnitType string

const (
	UnitTypeInfantry   UnitType = "inf"
	UnitTypeArtillery  UnitType = "arty"
	UnitTypeTank       UnitType = "tank"
	UnitTypeSubmarine  UnitType = "sub"
	UnitTypeBattleship UnitType = "bb"
)

// ProducibleUnitTypes lists the unit kinds a player can request, in menu order.
var ProducibleUnitTypes = []UnitType{
	UnitTypeInfantry,
	UnitTypeArtillery,
	UnitTypeTank,
	UnitTypeSubmarine,
	UnitTypeBattleship,
}

// Known reports whether the type is one of the producible kinds.
func (t UnitType) Known() bool {
	for _, known := range ProducibleUnitTypes {
		if t == known {
			return true
		}
	}
	return false
}

// Label is the short display name of the unit type.
func (t UnitType) Label() string {
	switch t {
	case UnitTypeInfantry:
		return "Infantry"
	case UnitTypeArtillery:
		return "Artillery"
	case UnitTypeTank:
		return "Tank"
	case UnitTypeSubmarine:
		return "Submarine"
	case UnitTypeBattleship:
		return "Battleship"
	}
	return string(t)
}

// Unit is a unit record from the snapshot. X is the column and Y the row.
type Unit struct {
	ID           string   `json:"id"`
	Owner        PlayerID `json:"owner"`
	Type         UnitType `json:"type"`
	X            int      `json:"x"`
	Y            int      `json:"y"`
	HP           int      `json:"hp"`
	MoveLeft     int      `json:"moveLeft"`
	SeaTransport bool     `json:"seaTransport"`
}

// Cell returns the grid position of the unit.
func (u *Unit) Cell() Cell {
	return Cell{R: u.Y, C: u.X}
}
