// Package pantry holds the client-side session state and its pure transitions.
// Every transition returns a new State and leaves its input untouched.
package pantry

import (
	"context"
	"errors"
	"slices"
	"strings"

	"github.com/pageza/budget-chef/backend/internal/types"
)

// ErrGenerateInFlight is reported when a generate is attempted while one is running
var ErrGenerateInFlight = errors.New("a generate request is already in flight")

// ErrNoIngredients is reported when a generate is attempted with an empty pantry
var ErrNoIngredients = errors.New("add at least one ingredient first")

type AuthMode int

const (
	AuthLogin AuthMode = iota
	AuthRegister
)

func (m AuthMode) String() string {
	if m == AuthRegister {
		return "register"
	}
	return "login"
}

// Selection is the pantry the user has built: lowercase unique ingredients in
// insertion order, and preferences from the fixed vocabulary.
type Selection struct {
	Ingredients []string
	Preferences []string
}

type State struct {
	Selection Selection
	Results   []types.RecipeSummary
	Loading   bool
	Error     string
	AuthMode  AuthMode
}

func (s State) clone() State {
	s.Selection.Ingredients = slices.Clone(s.Selection.Ingredients)
	s.Selection.Preferences = slices.Clone(s.Selection.Preferences)
	s.Results = slices.Clone(s.Results)
	return s
}

// AddIngredient appends a trimmed, lowercased ingredient. Blanks and duplicates are no-ops.
func AddIngredient(s State, name string) State {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" || slices.Contains(s.Selection.Ingredients, name) {
		return s
	}
	next := s.clone()
	next.Selection.Ingredients = append(next.Selection.Ingredients, name)
	return next
}

func RemoveIngredient(s State, name string) State {
	name = strings.ToLower(strings.TrimSpace(name))
	i := slices.Index(s.Selection.Ingredients, name)
	if i < 0 {
		return s
	}
	next := s.clone()
	next.Selection.Ingredients = slices.Delete(next.Selection.Ingredients, i, i+1)
	return next
}

// TogglePreference adds or removes a vocabulary preference, matched case-insensitively.
// Values outside the vocabulary are ignored.
func TogglePreference(s State, pref string) State {
	canon, ok := types.CanonicalPreference(pref)
	if !ok {
		return s
	}
	next := s.clone()
	if i := slices.Index(next.Selection.Preferences, canon); i >= 0 {
		next.Selection.Preferences = slices.Delete(next.Selection.Preferences, i, i+1)
	} else {
		next.Selection.Preferences = append(next.Selection.Preferences, canon)
	}
	return next
}

// HasPreference reports whether pref is currently selected
func (s State) HasPreference(pref string) bool {
	canon, ok := types.CanonicalPreference(pref)
	return ok && slices.Contains(s.Selection.Preferences, canon)
}

func ReplaceResults(s State, results []types.RecipeSummary) State {
	next := s.clone()
	next.Results = slices.Clone(results)
	return next
}

func ToggleAuthMode(s State) State {
	if s.AuthMode == AuthLogin {
		s.AuthMode = AuthRegister
	} else {
		s.AuthMode = AuthLogin
	}
	return s
}

// BeginGenerate enters the loading state. It refuses while a request is in flight
// or when there is nothing to generate from; the returned error says which.
func BeginGenerate(s State) (State, error) {
	if s.Loading {
		return s, ErrGenerateInFlight
	}
	if len(s.Selection.Ingredients) == 0 {
		next := s.clone()
		next.Error = ErrNoIngredients.Error()
		return next, ErrNoIngredients
	}
	next := s.clone()
	next.Loading = true
	next.Error = ""
	return next, nil
}

// FinishGenerate leaves the loading state. On failure the previous results are kept
// and the error is shown; on success the results are replaced.
func FinishGenerate(s State, results []types.RecipeSummary, err error) State {
	next := s.clone()
	next.Loading = false
	if err != nil {
		next.Error = err.Error()
		return next
	}
	next.Error = ""
	next.Results = slices.Clone(results)
	return next
}

// GenerateFunc performs the network call for a generate
type GenerateFunc func(ctx context.Context, ingredients, preferences []string) ([]types.RecipeSummary, error)

// Generate runs fn between BeginGenerate and FinishGenerate. The returned state is
// never loading, even when fn panics.
func Generate(ctx context.Context, s State, fn GenerateFunc) (next State) {
	started, err := BeginGenerate(s)
	if err != nil {
		return started
	}

	defer func() {
		if r := recover(); r != nil {
			next = FinishGenerate(started, nil, errors.New("recipe generation crashed"))
		}
	}()

	results, err := fn(ctx, started.Selection.Ingredients, started.Selection.Preferences)
	return FinishGenerate(started, results, err)
}
