// seehuhn.de/go/visibility - 2D visibility polygons
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package scene

import (
	"fmt"
	"io"
	"strconv"

	"seehuhn.de/go/geom/vec"
)

// Command is one instruction of a .qry file.  The concrete types are
// [Convert], [Destroy], [Paint] and [Clone].
type Command interface {
	isCommand()
}

// Convert turns all shapes with IDs in [First, Last] into obstacles.
//
//	a first last [h|v]
type Convert struct {
	First, Last int
	Orient      Orientation
}

// Bomb is the part shared by all commands which compute a visibility
// polygon.
type Bomb struct {
	At     vec.Vec2
	Suffix string // used in output file names
}

// Destroy removes every shape visible from At.
//
//	d x y suffix
type Destroy struct {
	Bomb
}

// Paint recolours every shape visible from At.
//
//	p x y color suffix
type Paint struct {
	Bomb
	Color string
}

// Clone copies every shape visible from At, moved by Offset.
//
//	cln x y dx dy suffix
type Clone struct {
	Bomb
	Offset vec.Vec2
}

func (Convert) isCommand() {}
func (Destroy) isCommand() {}
func (Paint) isCommand()   {}
func (Clone) isCommand()   {}

// ReadCommands reads the commands of a .qry file.
func ReadCommands(r io.Reader) ([]Command, error) {
	var cmds []Command
	err := forEachLine(r, func(fields []string, _ func(int) string) error {
		args := fields[1:]
		switch fields[0] {
		case "a":
			if len(args) != 2 && len(args) != 3 {
				return errArgCount
			}
			first, err := strconv.Atoi(args[0])
			if err != nil {
				return err
			}
			last, err := strconv.Atoi(args[1])
			if err != nil {
				return err
			}
			orient := Horizontal
			if len(args) == 3 {
				switch args[2] {
				case "h":
				case "v":
					orient = Vertical
				default:
					return fmt.Errorf("invalid orientation %q", args[2])
				}
			}
			cmds = append(cmds, Convert{First: first, Last: last, Orient: orient})

		case "d":
			if len(args) != 3 {
				return errArgCount
			}
			b, err := parseBomb(args[0], args[1], args[2])
			if err != nil {
				return err
			}
			cmds = append(cmds, Destroy{Bomb: b})

		case "p":
			if len(args) != 4 {
				return errArgCount
			}
			b, err := parseBomb(args[0], args[1], args[3])
			if err != nil {
				return err
			}
			cmds = append(cmds, Paint{Bomb: b, Color: args[2]})

		case "cln":
			if len(args) != 5 {
				return errArgCount
			}
			b, err := parseBomb(args[0], args[1], args[4])
			if err != nil {
				return err
			}
			d, err := parseFloats(args[2:4])
			if err != nil {
				return err
			}
			cmds = append(cmds, Clone{Bomb: b, Offset: vec.Vec2{X: d[0], Y: d[1]}})

		default:
			return fmt.Errorf("%w %q", errUnknownCommand, fields[0])
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return cmds, nil
}

func parseBomb(x, y, suffix string) (Bomb, error) {
	v, err := parseFloats([]string{x, y})
	if err != nil {
		return Bomb{}, err
	}
	return Bomb{At: vec.Vec2{X: v[0], Y: v[1]}, Suffix: suffix}, nil
}
