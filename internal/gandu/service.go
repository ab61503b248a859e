package gandu

import "context"

// Service handles gandu stat aggregation
type Service struct {
	repo *Repository
}

// NewService creates a new gandu service with repository dependency injected
func NewService(repo *Repository) *Service {
	return &Service{repo: repo}
}

// Stats returns the history, the leaderboard and the current king
func (s *Service) Stats(ctx context.Context) (*Stats, error) {
	history, err := s.repo.History(ctx)
	if err != nil {
		return nil, err
	}

	leaderboard, err := s.repo.Leaderboard(ctx)
	if err != nil {
		return nil, err
	}

	if history == nil {
		history = []*HistoryEntry{}
	}
	if leaderboard == nil {
		leaderboard = []*LeaderboardEntry{}
	}

	stats := &Stats{
		History:     history,
		Leaderboard: leaderboard,
	}
	if len(leaderboard) > 0 {
		stats.King = leaderboard[0]
	}

	return stats, nil
}
