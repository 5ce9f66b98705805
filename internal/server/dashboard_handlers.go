package server

import (
	"net/http"

	"golang.org/x/sync/errgroup"
)

type dashboardStats struct {
	TotalAccounts  int `json:"total_accounts"`
	ActiveAccounts int `json:"active_accounts"`
	TotalBuckets   int `json:"total_buckets"`
	ActiveBuckets  int `json:"active_buckets"`
}

// handleDashboardStats handles GET /api/admin/dashboard/stats. The four
// counts are independent, so they run concurrently.
func (s *Server) handleDashboardStats(w http.ResponseWriter, r *http.Request) {
	var stats dashboardStats

	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() error {
		n, err := s.accounts.Count(ctx, false)
		stats.TotalAccounts = n
		return err
	})
	g.Go(func() error {
		n, err := s.accounts.Count(ctx, true)
		stats.ActiveAccounts = n
		return err
	})
	g.Go(func() error {
		n, err := s.buckets.Count(ctx, false)
		stats.TotalBuckets = n
		return err
	})
	g.Go(func() error {
		n, err := s.buckets.Count(ctx, true)
		stats.ActiveBuckets = n
		return err
	})

	if err := g.Wait(); err != nil {
		s.handleError(w, r, err)
		return
	}

	respondSuccess(w, http.StatusOK, stats, "")
}
