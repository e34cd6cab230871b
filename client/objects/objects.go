package objects

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
)

type Lifecycle interface {
	// Game flow methods
	Init() error
	Destroy() error
	Update() error
	Draw(screen *ebiten.Image)
}

// GameObject is the highest level interface for game related types.
type GameObject interface {
	Lifecycle

	GetID() string
	GetZIndex() int
	GetParent() GameObject
	SetParent(parent GameObject)
	GetChildren() []GameObject
	AddChild(id string, child GameObject) error
	RemoveChild(id string) error
}

// childList keeps children in insertion order with an id index.
type childList struct {
	idxIDObjects map[string]GameObject
	ordered      []GameObject
}

func newChildList() *childList {
	return &childList{
		idxIDObjects: make(map[string]GameObject),
	}
}

func (l *childList) Add(id string, obj GameObject) {
	l.idxIDObjects[id] = obj
	l.ordered = append(l.ordered, obj)
}

func (l *childList) Get(id string) GameObject {
	return l.idxIDObjects[id]
}

func (l *childList) Remove(id string) {
	obj, ok := l.idxIDObjects[id]
	if !ok {
		return
	}
	delete(l.idxIDObjects, id)
	for i, o := range l.ordered {
		if o == obj {
			l.ordered = append(l.ordered[:i], l.ordered[i+1:]...)
			return
		}
	}
}

// BaseObject implements the tree plumbing. Concrete objects embed it and override the lifecycle.
type BaseObject struct {
	id       string
	zIndex   int
	parent   GameObject
	children *childList
}

var _ GameObject = &BaseObject{}

type NewBaseObjectOpts struct {
	// ZIndex orders siblings under a SortedZIndexObject.
	ZIndex int
}

func NewBaseObject(id string, opts *NewBaseObjectOpts) *BaseObject {
	o := &BaseObject{
		id:       id,
		children: newChildList(),
	}
	if opts != nil {
		o.zIndex = opts.ZIndex
	}
	return o
}

func (o *BaseObject) Init() error               { return nil }
func (o *BaseObject) Destroy() error            { return nil }
func (o *BaseObject) Update() error             { return nil }
func (o *BaseObject) Draw(screen *ebiten.Image) {}

func (o *BaseObject) GetID() string               { return o.id }
func (o *BaseObject) GetZIndex() int              { return o.zIndex }
func (o *BaseObject) GetParent() GameObject       { return o.parent }
func (o *BaseObject) SetParent(parent GameObject) { o.parent = parent }

func (o *BaseObject) GetChildren() []GameObject {
	return o.children.ordered
}

func (o *BaseObject) AddChild(id string, child GameObject) error {
	if _, ok := o.children.idxIDObjects[id]; ok {
		return fmt.Errorf("child object with id %s already exists", id)
	}
	if err := InitTree(child); err != nil {
		return fmt.Errorf("failed to initialize child object tree: %v", err)
	}
	o.children.Add(id, child)
	child.SetParent(o)
	return nil
}

func (o *BaseObject) RemoveChild(id string) error {
	child := o.children.Get(id)
	if child == nil {
		return fmt.Errorf("child object with id %s does not exist", id)
	}
	if err := DestroyTree(child); err != nil {
		return fmt.Errorf("failed to destroy child object tree: %v", err)
	}
	o.children.Remove(id)
	child.SetParent(nil)
	return nil
}

// InitTree initializes obj and then its children.
func InitTree(obj GameObject) error {
	if err := obj.Init(); err != nil {
		return fmt.Errorf("failed to initialize %s: %v", obj.GetID(), err)
	}
	for _, child := range obj.GetChildren() {
		if err := InitTree(child); err != nil {
			return err
		}
	}
	return nil
}

// DestroyTree destroys the children of obj before obj itself.
func DestroyTree(obj GameObject) error {
	for _, child := range append([]GameObject(nil), obj.GetChildren()...) {
		if err := DestroyTree(child); err != nil {
			return err
		}
	}
	if err := obj.Destroy(); err != nil {
		return fmt.Errorf("failed to destroy %s: %v", obj.GetID(), err)
	}
	return nil
}

// UpdateTree updates obj and then its children. Children may remove themselves while updating.
func UpdateTree(obj GameObject) error {
	if err := obj.Update(); err != nil {
		return fmt.Errorf("failed to update %s: %v", obj.GetID(), err)
	}
	for _, child := range append([]GameObject(nil), obj.GetChildren()...) {
		if err := UpdateTree(child); err != nil {
			return err
		}
	}
	return nil
}

// DrawTree draws obj and then its children, so children paint on top.
func DrawTree(obj GameObject, screen *ebiten.Image) {
	obj.Draw(screen)
	for _, child := range obj.GetChildren() {
		DrawTree(child, screen)
	}
}
