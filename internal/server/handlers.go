package server

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"github.com/rickgao/zora-dashboard/internal/api"
	"github.com/rickgao/zora-dashboard/internal/version"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status": "online",
		"app":    "Zora Dashboard",
		"chain":  "Base",
	})
}

// healthResponse is the /health body.
type healthResponse struct {
	Status      string       `json:"status"`
	Subscribers int          `json:"subscribers"`
	Upstream    string       `json:"upstream"`
	Version     version.Info `json:"version"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	resp := healthResponse{
		Status:   "ok",
		Upstream: "unknown",
		Version:  version.Get(),
	}
	if s.deps.Registry != nil {
		resp.Subscribers = s.deps.Registry.Len()
	}
	if s.deps.Upstream != nil {
		resp.Upstream = s.deps.Upstream.BreakerState()
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	s.deps.Metrics.Handler().ServeHTTP(w, r)
}

func (s *Server) handleOverview(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	writeJSON(w, http.StatusOK, s.deps.Dashboard.Overview(r.Context()))
}

// handleCoins serves both the named lists and single-coin detail; the router
// cannot register static list names next to the :address wildcard.
func (s *Server) handleCoins(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	name := ps.ByName("address")

	list, ok := coinLists[name]
	if !ok {
		writeJSON(w, http.StatusOK, s.deps.Dashboard.Coin(r.Context(), name))
		return
	}

	count, err := parseCount(r, coinsCount)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, s.deps.Dashboard.Coins(r.Context(), list, count))
}

func (s *Server) handleTraders(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	count, err := parseCount(r, tradersCount)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, s.deps.Dashboard.Traders(r.Context(), count))
}

func (s *Server) handleCreators(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	count, err := parseCount(r, creatorsCount)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, s.deps.Dashboard.Creators(r.Context(), count))
}

func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(s.deps.Dashboard.Profile(r.Context(), ps.ByName("identifier")))
}

func (s *Server) handleClusters(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	count, err := parseCount(r, clustersCount)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	list, err := parseList(r, api.ListTopVolume)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, s.deps.Dashboard.Clusters(r.Context(), list, count))
}

func (s *Server) handleWhales(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	minUSD, err := parseMinUSD(r, s.cfg.Whale.Stream.Threshold())
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, s.deps.Dashboard.Whales(r.Context(), minUSD))
}

// handleWhaleStream upgrades the connection and hands it to the registry,
// which owns it from then on.
func (s *Server) handleWhaleStream(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if s.deps.Registry == nil {
		writeError(w, http.StatusServiceUnavailable, "whale stream unavailable")
		return
	}

	conn, err := s.upgrader.Upgrade(w, r)
	if err != nil {
		s.logger.Debug("websocket upgrade failed", "request_id", RequestID(r.Context()), "err", err)
		return
	}

	id, err := s.deps.Registry.Attach(conn)
	if err != nil {
		s.logger.Warn("failed to attach whale subscriber", "err", err)
		conn.Close()
		return
	}
	s.logger.Debug("whale stream opened", "request_id", RequestID(r.Context()), "subscriber", id)
}
