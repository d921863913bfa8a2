package services

import (
	"sync"

	"costream/internal/core/domain"
)

// SubscriptionIndex tracks which users are watching each event. It is purely
// in-memory and advisory; absent event ids are lazily created so subscription
// calls never fail.
type SubscriptionIndex struct {
	mu   sync.RWMutex
	subs map[domain.EventID]map[domain.UserID]struct{}
}

func NewSubscriptionIndex() *SubscriptionIndex {
	return &SubscriptionIndex{
		subs: make(map[domain.EventID]map[domain.UserID]struct{}),
	}
}

func (s *SubscriptionIndex) Add(eventID domain.EventID, userID domain.UserID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	set, exists := s.subs[eventID]
	if !exists {
		set = make(map[domain.UserID]struct{})
		s.subs[eventID] = set
	}
	set[userID] = struct{}{}
}

func (s *SubscriptionIndex) Remove(eventID domain.EventID, userID domain.UserID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if set, exists := s.subs[eventID]; exists {
		delete(set, userID)
	}
}

func (s *SubscriptionIndex) Contains(eventID domain.EventID, userID domain.UserID) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	set, exists := s.subs[eventID]
	if !exists {
		return false
	}
	_, ok := set[userID]
	return ok
}

func (s *SubscriptionIndex) Members(eventID domain.EventID) []domain.UserID {
	s.mu.RLock()
	defer s.mu.RUnlock()

	set, exists := s.subs[eventID]
	if !exists {
		return nil
	}

	members := make([]domain.UserID, 0, len(set))
	for userID := range set {
		members = append(members, userID)
	}
	return members
}
