// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package subscriptions

import (
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/pkg/errors"

	"github.com/bullchain/bullchain/api/utils"
	"github.com/bullchain/bullchain/bull"
	"github.com/bullchain/bullchain/chain"
	"github.com/bullchain/bullchain/log"
	"github.com/bullchain/bullchain/logdb"
)

var logger = log.WithContext("pkg", "subscriptions")

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second
	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second
	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 7) / 10
)

type msgReader interface {
	Read() (msgs []any, hasMore bool, err error)
}

type Subscriptions struct {
	backtraceLimit uint32
	chain          *chain.Chain
	logDB          *logdb.LogDB
	upgrader       *websocket.Upgrader
	done           chan struct{}
	wg             sync.WaitGroup
}

func New(chain *chain.Chain, logDB *logdb.LogDB, allowedOrigins []string, backtraceLimit uint32) *Subscriptions {
	return &Subscriptions{
		backtraceLimit: backtraceLimit,
		chain:          chain,
		logDB:          logDB,
		upgrader: &websocket.Upgrader{
			EnableCompression: true,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				if origin == "" {
					return true
				}
				origin = strings.ToLower(origin)
				for _, allowed := range allowedOrigins {
					if allowed == "*" || allowed == origin {
						return true
					}
				}
				return false
			},
		},
		done: make(chan struct{}),
	}
}

func (s *Subscriptions) handleBlockReader(req *http.Request) (msgReader, error) {
	pos, err := s.parsePosition(req.URL.Query().Get("pos"))
	if err != nil {
		return nil, err
	}
	return newBlockReader(s.chain, pos), nil
}

func (s *Subscriptions) handleEventReader(req *http.Request) (msgReader, error) {
	query := req.URL.Query()
	pos, err := s.parsePosition(query.Get("pos"))
	if err != nil {
		return nil, err
	}

	filter := &EventFilter{}
	if name := query.Get("name"); name != "" {
		filter.Name = &name
	}
	if v := query.Get("postID"); v != "" {
		postID, err := bull.ParseBytes32(v)
		if err != nil {
			return nil, utils.BadRequest(errors.WithMessage(err, "postID"))
		}
		filter.PostID = &postID
	}
	if v := query.Get("account"); v != "" {
		account, err := bull.ParseAddress(v)
		if err != nil {
			return nil, utils.BadRequest(errors.WithMessage(err, "account"))
		}
		filter.Account = &account
	}
	return newEventReader(req.Context(), s.chain, s.logDB, pos, filter), nil
}

// parsePosition returns the number of the block to subscribe after, the best block if posStr is empty.
func (s *Subscriptions) parsePosition(posStr string) (uint32, error) {
	best := s.chain.BestBlock()
	if posStr == "" {
		return best.Number(), nil
	}
	pos, err := bull.ParseBytes32(posStr)
	if err != nil {
		return 0, utils.BadRequest(errors.WithMessage(err, "pos"))
	}
	num := chain.Number(pos)
	if num > best.Number() {
		return 0, utils.BadRequest(errors.New("pos: not found"))
	}
	if best.Number()-num > s.backtraceLimit {
		return 0, utils.BadRequest(errors.New("pos: backtrace limit exceeded"))
	}
	b, err := s.chain.GetBlock(num)
	if err != nil {
		return 0, err
	}
	if b.ID() != pos {
		return 0, utils.BadRequest(errors.New("pos: not found"))
	}
	return num, nil
}

func (s *Subscriptions) handleSubject(w http.ResponseWriter, req *http.Request) error {
	s.wg.Add(1)
	defer s.wg.Done()

	var (
		reader msgReader
		err    error
	)
	switch mux.Vars(req)["subject"] {
	case "block":
		reader, err = s.handleBlockReader(req)
	case "event":
		reader, err = s.handleEventReader(req)
	default:
		return utils.NotFound(errors.New("not found"))
	}
	if err != nil {
		return err
	}

	conn, closed, err := s.setupConn(w, req)
	// since the conn is hijacked here, no error should be returned in lines below
	if err != nil {
		logger.Debug("upgrade to websocket", "err", err)
		return nil
	}

	err = s.pipe(conn, reader, closed)
	s.closeConn(conn, err)
	return nil
}

// setupConn upgrades the request, and starts a loop reading control frames until the peer goes away.
func (s *Subscriptions) setupConn(w http.ResponseWriter, req *http.Request) (*websocket.Conn, chan struct{}, error) {
	conn, err := s.upgrader.Upgrade(w, req, nil)
	if err != nil {
		return nil, nil, err
	}

	closed := make(chan struct{})
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				logger.Debug("websocket read", "err", err)
				return
			}
		}
	}()
	return conn, closed, nil
}

func (s *Subscriptions) closeConn(conn *websocket.Conn, err error) {
	var msg []byte
	if err != nil {
		msg = websocket.FormatCloseMessage(websocket.CloseInternalServerErr, err.Error())
	} else {
		msg = websocket.FormatCloseMessage(websocket.CloseGoingAway, "")
	}
	if err := conn.WriteMessage(websocket.CloseMessage, msg); err != nil {
		logger.Debug("write close message", "err", err)
	}
	if err := conn.Close(); err != nil {
		logger.Debug("close websocket", "err", err)
	}
}

func (s *Subscriptions) pipe(conn *websocket.Conn, reader msgReader, closed chan struct{}) error {
	pingTicker := time.NewTicker(pingPeriod)
	defer pingTicker.Stop()

	for {
		// taken before reading, so a block sealed in between still wakes us up
		tick := s.chain.NewTicker()
		msgs, hasMore, err := reader.Read()
		if err != nil {
			return err
		}
		for _, msg := range msgs {
			if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				return err
			}
			if err := conn.WriteJSON(msg); err != nil {
				return err
			}
		}
		if hasMore {
			select {
			case <-s.done:
				return nil
			case <-closed:
				return nil
			default:
			}
			continue
		}
		select {
		case <-s.done:
			return nil
		case <-closed:
			return nil
		case <-tick:
		case <-pingTicker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return err
			}
		}
	}
}

// Close terminates the open subscriptions, and waits for their handlers to return.
func (s *Subscriptions) Close() {
	close(s.done)
	s.wg.Wait()
}

func (s *Subscriptions) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("/{subject:block|event}").
		Methods(http.MethodGet).
		HandlerFunc(utils.WrapHandlerFunc(s.handleSubject))
}
