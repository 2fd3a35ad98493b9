// Package debugserver delivers loaded transactions, including their full
// script op streams and debugger metadata, to a browser debugger UI over
// websockets.
package debugserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/bchsuite/bchscript/bchd/util"
	"github.com/bchsuite/bchscript/bchd/wire"
	"github.com/bchsuite/bchscript/configuration"
)

// Server accepts transactions over HTTP and serves their JSON form to
// debugger clients, both as plain responses and over a websocket that
// pushes the transaction as soon as a client connects.
type Server struct {
	cfg      *configuration.Configuration
	logger   *zap.Logger
	store    *TxStore
	upgrader websocket.Upgrader
}

// New returns a debug server over the given store.
func New(cfg *configuration.Configuration, logger *zap.Logger,
	store *TxStore) *Server {

	return &Server{
		cfg:    cfg,
		logger: logger,
		store:  store,
		upgrader: websocket.Upgrader{
			// The debugger UI is served from its own origin during
			// development.
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
}

// Router returns the HTTP routes of the server.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/tx", s.handlePutTx).Methods(http.MethodPost)
	r.HandleFunc("/tx", s.handleListTx).Methods(http.MethodGet)
	r.HandleFunc("/tx/{hash}", s.handleGetTx).Methods(http.MethodGet)
	r.HandleFunc("/ws/tx/{hash}", s.handleTxSocket)
	return r
}

// putTxResponse is the acknowledgement returned after storing a
// transaction.
type putTxResponse struct {
	Hash        string `json:"hash"`
	TotalOutput string `json:"total_output"`
}

// handlePutTx validates the posted transaction JSON and stores it under its
// hash.
func (s *Server) handlePutTx(w http.ResponseWriter, r *http.Request) {
	var body json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	unhashed, err := wire.TxFromJSON(body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	tx, err := unhashed.Hashed()
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	// Re-render rather than storing the request body so stored documents
	// are canonical.
	txJSON, err := wire.TxToJSON(tx)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	hash := tx.Hash().String()
	if err := s.store.Put(hash, txJSON); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	var total util.Amount
	for _, output := range tx.Outputs() {
		total += util.Amount(output.Value)
	}

	s.logger.Info("stored transaction",
		zap.String("hash", hash),
		zap.Int("inputs", len(tx.Inputs())),
		zap.Int("outputs", len(tx.Outputs())),
		zap.String("total_output", total.String()),
	)

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(putTxResponse{
		Hash:        hash,
		TotalOutput: total.String(),
	})
}

// handleListTx returns the hashes of every stored transaction.
func (s *Server) handleListTx(w http.ResponseWriter, r *http.Request) {
	hashes, err := s.store.Hashes()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(hashes)
}

// handleGetTx returns the stored JSON form of one transaction.
func (s *Server) handleGetTx(w http.ResponseWriter, r *http.Request) {
	txJSON, err := s.store.Get(mux.Vars(r)["hash"])
	if errors.Is(err, ErrTxNotFound) {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(txJSON)
}

// handleTxSocket upgrades to a websocket, immediately sends the transaction
// JSON, and then logs whatever the client sends until it disconnects.
func (s *Server) handleTxSocket(w http.ResponseWriter, r *http.Request) {
	hash := mux.Vars(r)["hash"]
	txJSON, err := s.store.Get(hash)
	if errors.Is(err, ErrTxNotFound) {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	defer func() { _ = conn.Close() }()

	s.logger.Info("sending tx", zap.String("hash", hash))
	if err := conn.WriteMessage(websocket.TextMessage, txJSON); err != nil {
		s.logger.Warn("error sending tx", zap.Error(err))
		return
	}

	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			return
		}
		s.logger.Debug("got msg",
			zap.String("hash", hash),
			zap.ByteString("msg", msg),
		)
	}
}

// Run serves until the context is canceled.
func (s *Server) Run(ctx context.Context) error {
	httpServer := &http.Server{
		Addr:    s.cfg.Listen,
		Handler: s.Router(),
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.logger.Info("serving debugger", zap.String("listen", s.cfg.Listen))
		err := httpServer.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	})
	g.Go(func() error {
		<-ctx.Done()
		return httpServer.Shutdown(context.Background())
	})
	return g.Wait()
}
