package game

import (
	"image/color"
	"sort"
	"testing"

	"pgregory.net/rapid"
)

func sortedNames(rounds []AmmoDef) []string {
	out := make([]string, len(rounds))
	for i, r := range rounds {
		out[i] = r.Name
	}
	sort.Strings(out)
	return out
}

func TestProperty_Magazine_InfiniteShotsKeepMultiset(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		capacity := rapid.IntRange(1, 8).Draw(t, "capacity")
		n := rapid.IntRange(1, capacity).Draw(t, "n")
		m, err := NewMagazine("P", capacity, color.RGBA{})
		if err != nil {
			t.Fatal(err)
		}
		names := []string{"a", "b", "c", "d", "e", "f", "g", "h"}
		for i := 0; i < n; i++ {
			d := AmmoWeak
			d.Name = names[i]
			m.Add(d)
		}
		before := sortedNames(m.Rounds())

		shots := rapid.IntRange(1, 30).Draw(t, "shots")
		for i := 0; i < shots; i++ {
			if m.Shoot(0, 0, 0) == nil {
				t.Fatalf("shot %d refused", i)
			}
			m.Update(AmmoWeak.ReloadTime)
		}
		after := sortedNames(m.Rounds())
		if len(after) != len(before) {
			t.Fatalf("round count changed: %v -> %v", before, after)
		}
		for i := range before {
			if before[i] != after[i] {
				t.Fatalf("multiset changed: %v -> %v", before, after)
			}
		}
	})
}

func TestProperty_Magazine_InvariantsUnderRandomOps(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		capacity := rapid.IntRange(1, 6).Draw(t, "capacity")
		m, err := NewMagazine("P", capacity, color.RGBA{})
		if err != nil {
			t.Fatal(err)
		}
		ops := rapid.SliceOfN(rapid.IntRange(0, 4), 1, 60).Draw(t, "ops")
		for _, op := range ops {
			switch op {
			case 0:
				uses := rapid.IntRange(-1, 3).Draw(t, "uses")
				m.Add(namedRound("r", uses))
			case 1:
				m.Shoot(0, 0, 0)
			case 2:
				m.Rearrange()
			case 3:
				m.Update(rapid.Float64Range(0, 1).Draw(t, "dt"))
			default:
				m.AddToBottom(namedRound("b", rapid.IntRange(-1, 3).Draw(t, "uses")))
			}

			if m.Len() > m.Capacity() {
				t.Fatalf("magazine holds %d > capacity %d", m.Len(), m.Capacity())
			}
			for _, r := range m.Rounds() {
				if r.Exhausted() {
					t.Fatal("exhausted round stored in magazine")
				}
			}
			if m.reloadTimer < 0 || m.rearrangeTimer < 0 {
				t.Fatal("timers went negative")
			}
			if m.CanShoot() == m.Reloading() {
				t.Fatal("canShoot must be exactly !reloading")
			}
			if m.CanRearrange() != (!m.Reloading() && !m.Rearranging()) {
				t.Fatal("canRearrange must require both timers idle")
			}
		}
	})
}
