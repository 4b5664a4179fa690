package axle

import (
	"fmt"
	"reflect"
	"slices"
)

// SystemDeclaration records which component and resource types a named
// unit of logic says it uses. Nothing here schedules or runs it.
type SystemDeclaration struct {
	Name       string
	Components []reflect.Type
	Resources  []reflect.Type
}

func (d SystemDeclaration) DeclaresComponent(key reflect.Type) bool {
	return slices.Contains(d.Components, key)
}

func (d SystemDeclaration) DeclaresResource(key reflect.Type) bool {
	return slices.Contains(d.Resources, key)
}

func (d SystemDeclaration) clone() SystemDeclaration {
	return SystemDeclaration{
		Name:       d.Name,
		Components: slices.Clone(d.Components),
		Resources:  slices.Clone(d.Resources),
	}
}

// Systems is the registry of system declarations, indexed by name.
type Systems struct {
	cache *SimpleCache[SystemDeclaration]
}

func newSystems(capacity int) *Systems {
	return &Systems{cache: FactoryNewCache[SystemDeclaration](capacity).(*SimpleCache[SystemDeclaration])}
}

// Create registers an empty declaration under name. Creating a name that
// already exists resets its declaration.
func (s *Systems) Create(name string) error {
	if idx, ok := s.cache.GetIndex(name); ok {
		*s.cache.GetItem(idx) = SystemDeclaration{Name: name}
		Config.logger.Debug("system declaration reset", "system", name)
		return nil
	}
	if _, err := s.cache.Register(name, SystemDeclaration{Name: name}); err != nil {
		return fmt.Errorf("failed to create system %q: %w", name, err)
	}
	return nil
}

func (s *Systems) AddComponent(name string, key reflect.Type) error {
	decl, ok := s.declaration(name)
	if !ok {
		return CreateSystemNeverCalledError{System: name}
	}
	if !decl.DeclaresComponent(key) {
		decl.Components = append(decl.Components, key)
	}
	return nil
}

func (s *Systems) AddResource(name string, key reflect.Type) error {
	decl, ok := s.declaration(name)
	if !ok {
		return CreateSystemNeverCalledError{System: name}
	}
	if !decl.DeclaresResource(key) {
		decl.Resources = append(decl.Resources, key)
	}
	return nil
}

// Get returns a copy of the declaration stored under name.
func (s *Systems) Get(name string) (SystemDeclaration, error) {
	decl, ok := s.declaration(name)
	if !ok {
		return SystemDeclaration{}, SystemDoesNotExistError{System: name}
	}
	return decl.clone(), nil
}

// Component succeeds when system name declares component key.
func (s *Systems) Component(name string, key reflect.Type) error {
	decl, ok := s.declaration(name)
	if !ok {
		return SystemDoesNotExistError{System: name}
	}
	if !decl.DeclaresComponent(key) {
		return ComponentInSystemDoesNotExistError{System: name, Key: key}
	}
	return nil
}

// Resource succeeds when system name declares resource key.
func (s *Systems) Resource(name string, key reflect.Type) error {
	decl, ok := s.declaration(name)
	if !ok {
		return SystemDoesNotExistError{System: name}
	}
	if !decl.DeclaresResource(key) {
		return ResourceInSystemDoesNotExistError{System: name, Key: key}
	}
	return nil
}

// Names returns the system names in creation order.
func (s *Systems) Names() []string {
	names := make([]string, s.cache.Len())
	for i := range names {
		names[i] = s.cache.GetItem(i).Name
	}
	return names
}

func (s *Systems) declaration(name string) (*SystemDeclaration, bool) {
	idx, ok := s.cache.GetIndex(name)
	if !ok {
		return nil, false
	}
	return s.cache.GetItem(idx), true
}
