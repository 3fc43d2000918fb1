package pdbx

// ContainerKind distinguishes data blocks from dictionary definition
// frames.
type ContainerKind int

const (
	// DataKind marks a container opened by data_ or global_.
	DataKind ContainerKind = iota
	// DefinitionKind marks a dictionary save_ frame.
	DefinitionKind
)

// Container is a named top-level scope holding categories in insertion
// order with unique names. Containers own their categories directly;
// categories hold no reference back.
type Container struct {
	name   string
	kind   ContainerKind
	global bool
	cats   []*Category
	index  map[string]int
}

// NewContainer returns an empty data container.
func NewContainer(name string) *Container {
	return &Container{name: name, kind: DataKind, index: make(map[string]int)}
}

// NewDefinition returns an empty definition container.
func NewDefinition(name string) *Container {
	return &Container{name: name, kind: DefinitionKind, index: make(map[string]int)}
}

// Name returns the container name.
func (c *Container) Name() string { return c.name }

// SetName changes the container name.
func (c *Container) SetName(name string) { c.name = name }

// Kind returns the container kind.
func (c *Container) Kind() ContainerKind { return c.kind }

// IsDefinition reports whether the container is a save_ frame.
func (c *Container) IsDefinition() bool { return c.kind == DefinitionKind }

// SetGlobal marks the container as opened by the global_ keyword.
func (c *Container) SetGlobal() { c.global = true }

// IsGlobal reports whether the container was opened by global_.
func (c *Container) IsGlobal() bool { return c.global }

// Len returns the number of categories.
func (c *Container) Len() int { return len(c.cats) }

// Has reports whether a category of the given name exists.
func (c *Container) Has(name string) bool {
	_, ok := c.index[name]
	return ok
}

// Category returns the named category, or nil if it does not exist.
func (c *Container) Category(name string) *Category {
	if i, ok := c.index[name]; ok {
		return c.cats[i]
	}
	return nil
}

// CategoryNames returns the category names in insertion order.
func (c *Container) CategoryNames() []string {
	out := make([]string, 0, len(c.cats))
	for _, cat := range c.cats {
		out = append(out, cat.Name())
	}
	return out
}

// Append adds a category. An existing category of the same name is
// overwritten in place, keeping its position in the order.
func (c *Container) Append(cat *Category) {
	if i, ok := c.index[cat.Name()]; ok {
		c.cats[i] = cat
		return
	}
	c.index[cat.Name()] = len(c.cats)
	c.cats = append(c.cats, cat)
}

// Replace overwrites an existing category of the same name and reports
// whether one was found.
func (c *Container) Replace(cat *Category) bool {
	i, ok := c.index[cat.Name()]
	if !ok {
		return false
	}
	c.cats[i] = cat
	return true
}

// Rename changes a category's name in place. It reports false when the
// old name does not exist or the new name would collide with another
// category.
func (c *Container) Rename(oldName, newName string) bool {
	i, ok := c.index[oldName]
	if !ok {
		return false
	}
	if j, exists := c.index[newName]; exists && j != i {
		return false
	}
	delete(c.index, oldName)
	c.index[newName] = i
	c.cats[i].SetName(newName)
	return true
}

// Remove deletes the named category and reports whether it existed.
func (c *Container) Remove(name string) bool {
	i, ok := c.index[name]
	if !ok {
		return false
	}
	delete(c.index, name)
	c.cats = append(c.cats[:i], c.cats[i+1:]...)
	for j := i; j < len(c.cats); j++ {
		c.index[c.cats[j].Name()] = j
	}
	return true
}

// VisitCategories calls fn once per category in insertion order. A
// non-nil error from fn stops the walk and is returned.
func (c *Container) VisitCategories(fn func(index int, cat *Category) error) error {
	for i, cat := range c.cats {
		if err := fn(i, cat); err != nil {
			return err
		}
	}
	return nil
}
