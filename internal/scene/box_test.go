package scene

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNewBox_Defaults(t *testing.T) {
	t.Parallel()

	s := NewBox(BoxOptions{ImageURL: "/img/cover.png"}).Snapshot()

	require.Equal(t, 10.0, s.Width)
	require.Equal(t, 200.0, s.Height)
	require.Equal(t, 1.0, s.Thickness)
	require.Zero(t, s.Rotation)
	require.Zero(t, s.Position)
	require.False(t, s.Hovered)

	require.Len(t, s.Faces, 6)
	names := make([]string, 0, len(s.Faces))
	for _, f := range s.Faces {
		names = append(names, f.Name)
	}
	require.Equal(t, []string{"right", "left", "top", "bottom", "front", "back"}, names)
	require.Equal(t, "/img/cover.png", s.Faces[4].Image)
	require.Equal(t, "/img/cover.png", s.Faces[5].Image)
	require.Equal(t, 0.9, s.Faces[5].Opacity)
	require.Empty(t, s.Faces[0].Image)
}

func TestBox_Advance_Spins(t *testing.T) {
	t.Parallel()

	b := NewBox(BoxOptions{})
	for i := 0; i < 10; i++ {
		b.Advance(time.Duration(i) * 16 * time.Millisecond)
	}

	s := b.Snapshot()
	require.Equal(t, uint64(10), s.Frame)
	require.InDelta(t, 0.05, s.Rotation.Y, 1e-9)
	require.Zero(t, s.Rotation.X)
	require.Zero(t, s.Position.Z)
}

func TestBox_Hover_EasesToTargetAndBack(t *testing.T) {
	t.Parallel()

	b := NewBox(BoxOptions{})
	b.Advance(0)

	b.SetHover(true)
	base := time.Second
	b.Advance(base) // переход стартует с текущего положения

	start := b.Snapshot()
	require.True(t, start.Hovered)
	require.InDelta(t, 0.01, start.Rotation.Y, 1e-9)
	require.Zero(t, start.Position.Z)

	b.Advance(base + hoverDuration/2)
	mid := b.Snapshot()
	// power2.out к середине проходит 75% пути.
	require.InDelta(t, 5*0.75, mid.Position.Z, 1e-9)
	require.InDelta(t, 0.03*0.75, mid.Rotation.X, 1e-9)

	b.Advance(base + hoverDuration)
	end := b.Snapshot()
	require.InDelta(t, hoverRotationX, end.Rotation.X, 1e-9)
	require.InDelta(t, hoverRotationY, end.Rotation.Y, 1e-9)
	require.InDelta(t, hoverPositionZ, end.Position.Z, 1e-9)

	// После перехода вращение продолжается от цели.
	b.Advance(base + hoverDuration + 16*time.Millisecond)
	require.InDelta(t, hoverRotationY+boxSpin, b.Snapshot().Rotation.Y, 1e-9)

	b.SetHover(false)
	b.Advance(2 * time.Second)
	b.Advance(2*time.Second + hoverDuration)

	back := b.Snapshot()
	require.False(t, back.Hovered)
	require.InDelta(t, 0, back.Rotation.X, 1e-9)
	require.InDelta(t, 0, back.Rotation.Y, 1e-9)
	require.InDelta(t, 0, back.Position.Z, 1e-9)
}

func TestBox_SnapshotIsCopy(t *testing.T) {
	t.Parallel()

	b := NewBox(BoxOptions{ImageURL: "a.png"})
	s := b.Snapshot()
	s.Faces[4].Image = "mutated"

	require.Equal(t, "a.png", b.Snapshot().Faces[4].Image)
}

func TestBox_ConcurrentAccess(t *testing.T) {
	t.Parallel()

	b := NewBox(BoxOptions{})

	var wg sync.WaitGroup
	wg.Add(3)
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			b.Advance(time.Duration(i) * time.Millisecond)
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			b.SetHover(i%2 == 0)
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			_ = b.Snapshot()
		}
	}()
	wg.Wait()

	require.Equal(t, uint64(200), b.Snapshot().Frame)
}
