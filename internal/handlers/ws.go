package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/websocket"

	"github.com/vancomm/minesweeper-daily/internal/mines"
	"github.com/vancomm/minesweeper-daily/internal/store"
)

/*
 * A text frame carries one command per line:
 *
 *	g		send the current state
 *	o row col	reveal
 *	f row col	toggle a flag
 *	c row col	chord
 *
 * Every frame is answered with the session state, or with a CommandError
 * naming the first line that could not be parsed. A frame with a bad line
 * changes nothing.
 */
var commandNargs = map[string]int{
	"g": 0,
	"o": 2,
	"f": 2,
	"c": 2,
}

type command struct {
	op       string
	row, col int
}

func parseRowCol(args []string) (row int, col int, err error) {
	if row, err = strconv.Atoi(args[0]); err != nil {
		err = fmt.Errorf("row must be an int")
		return
	}
	if col, err = strconv.Atoi(args[1]); err != nil {
		err = fmt.Errorf("col must be an int")
		return
	}
	return
}

func parseCommand(line string) (cmd command, err error) {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return cmd, fmt.Errorf("empty command")
	}

	nargs, ok := commandNargs[parts[0]]
	if !ok {
		return cmd, fmt.Errorf("unknown command")
	}
	if nargs != len(parts)-1 {
		return cmd, fmt.Errorf("invalid number of arguments")
	}

	cmd.op = parts[0]
	if nargs == 2 {
		cmd.row, cmd.col, err = parseRowCol(parts[1:])
	}
	return
}

func parseCommands(text string) ([]command, *CommandError) {
	var cmds []command
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		cmd, err := parseCommand(line)
		if err != nil {
			return nil, &CommandError{Error: err.Error(), Line: line}
		}
		cmds = append(cmds, cmd)
	}
	return cmds, nil
}

func (c command) apply(g *mines.GameState) {
	switch c.op {
	case "o":
		g.Reveal(c.row, c.col)
	case "f":
		g.ToggleFlag(c.row, c.col)
	case "c":
		g.Chord(c.row, c.col)
	}
}

func (h GameHandler) ConnectWS(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if _, err := h.store.Get(r.Context(), id); err != nil {
		sendError(w, h.log, err)
		return
	}

	c, err := h.ws.Upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.WithError(err).Warn("unable to upgrade")
		return
	}
	defer c.Close()

	log := h.log.WithField("game_session_id", id)

	for {
		mt, message, err := c.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.WithError(err).Warn("abnormal ws break")
			}
			return
		}
		if mt != websocket.TextMessage {
			return
		}

		text := strings.TrimSpace(string(message))
		log.Debugf("\t> %s", text)

		cmds, cmdErr := parseCommands(text)
		if cmdErr != nil {
			if err := c.WriteJSON(cmdErr); err != nil {
				log.WithError(err).Error("unable to write json")
				return
			}
			continue
		}

		var wasPlaying bool
		game, err := h.store.Update(r.Context(), id, func(g *mines.GameState) error {
			wasPlaying = !g.GameOver
			for _, cmd := range cmds {
				if g.GameOver {
					break
				}
				cmd.apply(g)
			}
			return nil
		})
		if errors.Is(err, store.ErrNotFound) {
			c.WriteJSON(wrapError(ErrGameNotFound))
			return
		}
		if err != nil {
			log.WithError(err).Error("unable to update session")
			c.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(
				websocket.CloseInternalServerErr, "internal server error",
			))
			return
		}

		if wasPlaying && game.GameOver {
			h.logFinished(id, game)
		}

		if err := c.WriteJSON(GameResponse{GameID: id, State: game.Snapshot()}); err != nil {
			log.WithError(err).Error("unable to write json")
			return
		}
		log.Debug("\t< <session data>")
	}
}
