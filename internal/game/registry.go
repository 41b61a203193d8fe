package game

import "sort"

// TrainerEffect resolves a one-shot action card. It must check its own
// preconditions before changing anything and report whether it resolved.
type TrainerEffect func(e *Engine, player int, card *CardInstance) bool

// Trainer pairs an effect with a side-effect-free readiness check used to
// filter the legal action list.
type Trainer struct {
	Name    string
	Ready   func(e *Engine, player int, card *CardInstance) bool
	Resolve TrainerEffect
}

// TrainerRegistry maps action card names to their effects.
type TrainerRegistry struct {
	byName map[string]*Trainer
}

// NewTrainerRegistry returns a registry holding every built-in trainer.
func NewTrainerRegistry() *TrainerRegistry {
	r := &TrainerRegistry{byName: make(map[string]*Trainer)}
	for _, t := range baseTrainers() {
		r.Register(t)
	}
	return r
}

// Register adds or replaces a trainer.
func (r *TrainerRegistry) Register(t Trainer) {
	r.byName[t.Name] = &t
}

// Lookup finds a trainer by card name.
func (r *TrainerRegistry) Lookup(name string) (*Trainer, bool) {
	t, ok := r.byName[name]
	return t, ok
}

// Names returns the registered trainer names in sorted order.
func (r *TrainerRegistry) Names() []string {
	names := make([]string, 0, len(r.byName))
	for n := range r.byName {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
