package engine

import (
	"context"
	"fmt"
	"strings"

	"pulsestudy/internal/storage"
)

type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

func (t Theme) IsValid() bool {
	return t == ThemeLight || t == ThemeDark
}

func ParseTheme(input string) (Theme, error) {
	t := Theme(strings.ToLower(strings.TrimSpace(input)))
	if !t.IsValid() {
		return "", fmt.Errorf("invalid theme %q (use light or dark)", input)
	}
	return t, nil
}

func (s *Service) UserName() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.userName
}

func (s *Service) SetUserName(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.sync(ctx); err != nil {
		return err
	}

	s.userName = strings.TrimSpace(name)
	return s.persist(ctx, storage.KeyUserName)
}

func (s *Service) Theme() Theme {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.theme
}

func (s *Service) SetTheme(ctx context.Context, t Theme) error {
	if !t.IsValid() {
		return fmt.Errorf("invalid theme %q", t)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.sync(ctx); err != nil {
		return err
	}

	s.theme = t
	return s.persist(ctx, storage.KeyTheme)
}
