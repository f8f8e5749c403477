// Package console is the line-oriented terminal front end for a fleet.
package console

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"liftbank/src/config"
	"liftbank/src/elev"
	"liftbank/src/types"
	"liftbank/src/utils"
)

// Fleet is the part of the dispatcher the console drives.
type Fleet interface {
	Assign(floor int, dir types.HallType) int
	AddTargetTo(id, floor int)
	OpenDoor(id int)
	CloseDoor(id int)
	TriggerRing(id int)
	List() []elev.ElevState
}

var (
	ErrUnknownCommand = errors.New("unknown command")
	ErrUsage          = errors.New("bad arguments")
	ErrOutOfBounds    = errors.New("floor out of bounds")
)

const helpText = `commands:
  call <floor> <up|down>   request an elevator
  send <id> <floor>        add a target floor to one elevator
  open <id> | close <id>   operate the doors
  ring <id>                pulse the alarm
  status                   show every elevator
  quit`

type Op int

const (
	OpCall Op = iota
	OpSend
	OpOpen
	OpClose
	OpRing
	OpStatus
	OpHelp
	OpQuit
)

type Command struct {
	Op    Op
	ID    int
	Floor int
	Dir   types.HallType
}

// Parse turns one input line into a command. Floors are checked against the
// advisory bounds in cfg.
func Parse(line string, cfg config.Config) (Command, error) {
	fields := strings.Fields(strings.ToLower(line))
	if len(fields) == 0 {
		return Command{}, fmt.Errorf("%w: empty line", ErrUsage)
	}
	name, args := fields[0], fields[1:]
	switch name {
	case "call":
		if len(args) != 2 {
			return Command{}, fmt.Errorf("%w: call <floor> <up|down>", ErrUsage)
		}
		floor, err := parseFloor(args[0], cfg)
		if err != nil {
			return Command{}, err
		}
		var dir types.HallType
		switch args[1] {
		case "up", "u":
			dir = types.HallUp
		case "down", "d":
			dir = types.HallDown
		default:
			return Command{}, fmt.Errorf("%w: direction %q", ErrUsage, args[1])
		}
		return Command{Op: OpCall, Floor: floor, Dir: dir}, nil
	case "send":
		if len(args) != 2 {
			return Command{}, fmt.Errorf("%w: send <id> <floor>", ErrUsage)
		}
		id, err := parseInt(args[0])
		if err != nil {
			return Command{}, err
		}
		floor, err := parseFloor(args[1], cfg)
		if err != nil {
			return Command{}, err
		}
		return Command{Op: OpSend, ID: id, Floor: floor}, nil
	case "open", "close", "ring":
		if len(args) != 1 {
			return Command{}, fmt.Errorf("%w: %s <id>", ErrUsage, name)
		}
		id, err := parseInt(args[0])
		if err != nil {
			return Command{}, err
		}
		op := map[string]Op{"open": OpOpen, "close": OpClose, "ring": OpRing}[name]
		return Command{Op: op, ID: id}, nil
	case "status", "ls":
		return Command{Op: OpStatus}, nil
	case "help", "?":
		return Command{Op: OpHelp}, nil
	case "quit", "exit", "q":
		return Command{Op: OpQuit}, nil
	}
	return Command{}, fmt.Errorf("%w: %q", ErrUnknownCommand, name)
}

func parseInt(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", ErrUsage, s)
	}
	return n, nil
}

func parseFloor(s string, cfg config.Config) (int, error) {
	floor, err := parseInt(s)
	if err != nil {
		return 0, err
	}
	if !cfg.InBounds(floor) {
		return 0, fmt.Errorf("%w: %d not in [%d, %d]", ErrOutOfBounds, floor, cfg.MinFloor, cfg.MaxFloor)
	}
	return floor, nil
}

type Console struct {
	fleet Fleet
	cfg   config.Config
	out   io.Writer
}

func New(fleet Fleet, cfg config.Config, out io.Writer) *Console {
	return &Console{fleet: fleet, cfg: cfg, out: out}
}

// Handle parses and runs one line. It reports whether the user asked to quit.
func (c *Console) Handle(line string) (bool, error) {
	cmd, err := Parse(line, c.cfg)
	if err != nil {
		return false, err
	}
	switch cmd.Op {
	case OpCall:
		id := c.fleet.Assign(cmd.Floor, cmd.Dir)
		fmt.Fprintf(c.out, "call %d %s -> elevator %d\n", cmd.Floor, cmd.Dir, id)
	case OpSend:
		c.fleet.AddTargetTo(cmd.ID, cmd.Floor)
	case OpOpen:
		c.fleet.OpenDoor(cmd.ID)
	case OpClose:
		c.fleet.CloseDoor(cmd.ID)
	case OpRing:
		c.fleet.TriggerRing(cmd.ID)
	case OpStatus:
		for _, s := range c.fleet.List() {
			fmt.Fprintln(c.out, FormatState(s))
		}
	case OpHelp:
		fmt.Fprintln(c.out, helpText)
	case OpQuit:
		return true, nil
	}
	return false, nil
}

func FormatState(s elev.ElevState) string {
	ring := ""
	if s.RingActive {
		ring = " RING"
	}
	return fmt.Sprintf("#%d floor=%d dir=%s door=%s state=%s targets=%s%s",
		s.ID, s.Floor, s.Dir, s.Door, s.Behaviour, utils.FormatFloors(s.TargetFloors), ring)
}

func FormatEvent(ev elev.Event) string {
	return fmt.Sprintf("[%s] %-9s %s", ev.Time.Format("15:04:05"), ev.Type, FormatState(ev.State))
}
