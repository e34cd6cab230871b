package objects

import (
	"testing"

	"github.com/cbodonnell/frontline/client/session"
	"github.com/cbodonnell/frontline/pkg/messages"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	*BaseObject
	calls *[]string
}

func newRecorder(id string, z int, calls *[]string) *recorder {
	return &recorder{
		BaseObject: NewBaseObject(id, &NewBaseObjectOpts{ZIndex: z}),
		calls:      calls,
	}
}

func (r *recorder) Init() error {
	*r.calls = append(*r.calls, "init:"+r.GetID())
	return nil
}

func (r *recorder) Destroy() error {
	*r.calls = append(*r.calls, "destroy:"+r.GetID())
	return nil
}

func (r *recorder) Update() error {
	*r.calls = append(*r.calls, "update:"+r.GetID())
	return nil
}

func (r *recorder) Draw(screen *ebiten.Image) {
	*r.calls = append(*r.calls, "draw:"+r.GetID())
}

func TestSortedZIndexObject_Order(t *testing.T) {
	calls := []string{}
	root := NewSortedZIndexObject("root")

	require.NoError(t, root.AddChild("notice", newRecorder("notice", 2, &calls)))
	require.NoError(t, root.AddChild("board", newRecorder("board", 0, &calls)))
	require.NoError(t, root.AddChild("hud", newRecorder("hud", 1, &calls)))
	require.NoError(t, root.AddChild("hud-log", newRecorder("hud-log", 1, &calls)))
	assert.Error(t, root.AddChild("hud", newRecorder("hud", 1, &calls)))

	assert.Equal(t, []string{"init:notice", "init:board", "init:hud", "init:hud-log"}, calls)

	calls = calls[:0]
	DrawTree(root, nil)
	assert.Equal(t, []string{"draw:board", "draw:hud", "draw:hud-log", "draw:notice"}, calls)

	calls = calls[:0]
	require.NoError(t, root.RemoveChild("hud"))
	assert.Error(t, root.RemoveChild("hud"))
	require.NoError(t, UpdateTree(root))
	assert.Equal(t, []string{"destroy:hud", "update:board", "update:hud-log", "update:notice"}, calls)
}

func TestBaseObject_Tree(t *testing.T) {
	calls := []string{}
	root := NewBaseObject("root", nil)
	child := newRecorder("child", 0, &calls)
	require.NoError(t, root.AddChild("child", child))
	assert.Equal(t, root, child.GetParent())

	require.NoError(t, DestroyTree(root))
	assert.Equal(t, []string{"init:child", "destroy:child"}, calls)
}

func TestNoticeObject_BlocksUI(t *testing.T) {
	sess := session.NewSession(session.NewSessionOptions{})
	notice := NewNoticeObject("notice", sess, 10)
	// a nil widget tree would panic if the UI object ever reached it
	form := NewUIObject("form", nil, 0)
	form.BlockWhile(notice)

	assert.False(t, notice.Active())

	sess.HandleError(&messages.Error{Msg: "Room not found"})
	require.True(t, notice.Active())
	assert.NotPanics(t, func() {
		require.NoError(t, form.Update())
	})

	sess.DismissNotice()
	assert.False(t, notice.Active())
}
