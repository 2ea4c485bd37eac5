package registry

import (
	"errors"
	"sync"
	"testing"

	"github.com/holiman/uint256"
)

func addr(b byte) Address {
	var a Address
	a[AddressLength-1] = b
	return a
}

type captureSink struct {
	events []Event
}

func (s *captureSink) Publish(ev Event) {
	s.events = append(s.events, ev)
}

func TestNewMintsMasterSeed(t *testing.T) {
	master := addr(1)
	sink := &captureSink{}

	r, err := New(master, sink)
	if err != nil {
		t.Fatalf("new registry: %v", err)
	}

	if r.Master() != master {
		t.Fatalf("expected master %s, got %s", master, r.Master())
	}
	if got := r.Share(master); !got.Eq(uint256.NewInt(MasterSeedShare)) {
		t.Fatalf("expected master share %d, got %s", MasterSeedShare, got.Dec())
	}
	if len(r.Owners()) != 0 {
		t.Fatalf("expected empty owner set, got %v", r.Owners())
	}
	if len(sink.events) != 1 || sink.events[0].Type != EventMasterSetup || sink.events[0].Account != master {
		t.Fatalf("expected MasterSetup event, got %+v", sink.events)
	}
}

func TestNewRejectsZeroMaster(t *testing.T) {
	if _, err := New(Address{}, nil); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("expected invalid argument, got %v", err)
	}
}

func TestAddOwnerMintsAndRecords(t *testing.T) {
	master, owner := addr(1), addr(2)
	sink := &captureSink{}
	r, _ := New(master, sink)

	if err := r.AddOwner(master, owner); err != nil {
		t.Fatalf("add owner: %v", err)
	}

	if !r.IsOwner(owner) {
		t.Fatalf("expected %s to be an owner", owner)
	}
	if got := r.Owners(); len(got) != 1 || got[0] != owner {
		t.Fatalf("unexpected owner list: %v", got)
	}
	if got := r.Share(owner); !got.Eq(uint256.NewInt(OwnerSeedShare)) {
		t.Fatalf("expected owner share %d, got %s", OwnerSeedShare, got.Dec())
	}
	last := sink.events[len(sink.events)-1]
	if last.Type != EventOwnerAddition || last.Account != owner {
		t.Fatalf("expected OwnerAddition event, got %+v", last)
	}
}

func TestAddOwnerUnauthorized(t *testing.T) {
	master, stranger, owner := addr(1), addr(2), addr(3)
	r, _ := New(master, nil)

	if err := r.AddOwner(stranger, owner); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected unauthorized, got %v", err)
	}
	if len(r.Owners()) != 0 {
		t.Fatalf("owner set mutated on failed call: %v", r.Owners())
	}
	if !r.Share(owner).IsZero() {
		t.Fatalf("share minted on failed call")
	}
}

func TestAddOwnerTwiceIsNoOp(t *testing.T) {
	master, owner := addr(1), addr(2)
	sink := &captureSink{}
	r, _ := New(master, sink)

	r.AddOwner(master, owner)
	before := len(sink.events)

	if err := r.AddOwner(master, owner); err != nil {
		t.Fatalf("re-add owner: %v", err)
	}
	if got := r.Share(owner); !got.Eq(uint256.NewInt(OwnerSeedShare)) {
		t.Fatalf("re-add minted share, balance %s", got.Dec())
	}
	if len(r.Owners()) != 1 {
		t.Fatalf("re-add duplicated owner entry: %v", r.Owners())
	}
	if len(sink.events) != before {
		t.Fatalf("re-add emitted an event")
	}
}

func TestRemoveOwnerSwapsWithLast(t *testing.T) {
	master := addr(1)
	a, b, c := addr(10), addr(11), addr(12)
	r, _ := New(master, nil)
	r.AddOwner(master, a)
	r.AddOwner(master, b)
	r.AddOwner(master, c)

	if err := r.RemoveOwner(master, a); err != nil {
		t.Fatalf("remove owner: %v", err)
	}

	got := r.Owners()
	if len(got) != 2 || got[0] != c || got[1] != b {
		t.Fatalf("expected [c b] after swap-pop, got %v", got)
	}
	if r.IsOwner(a) {
		t.Fatalf("removed owner still a member")
	}
}

func TestRemoveLastRemainingOwner(t *testing.T) {
	master, owner := addr(1), addr(2)
	r, _ := New(master, nil)
	r.AddOwner(master, owner)

	if err := r.RemoveOwner(master, owner); err != nil {
		t.Fatalf("remove sole owner: %v", err)
	}
	if len(r.Owners()) != 0 || r.IsOwner(owner) {
		t.Fatalf("sole owner not fully removed: %v", r.Owners())
	}
}

func TestRemoveOwnerErrors(t *testing.T) {
	master, owner, stranger := addr(1), addr(2), addr(3)
	r, _ := New(master, nil)
	r.AddOwner(master, owner)

	if err := r.RemoveOwner(owner, owner); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected unauthorized, got %v", err)
	}
	if err := r.RemoveOwner(master, stranger); !errors.Is(err, ErrNotOwner) {
		t.Fatalf("expected not-owner, got %v", err)
	}
	if !r.IsOwner(owner) || len(r.Owners()) != 1 {
		t.Fatalf("failed removals mutated state: %v", r.Owners())
	}
}

func TestGiveShareToStranger(t *testing.T) {
	master, owner, stranger := addr(1), addr(2), addr(3)
	sink := &captureSink{}
	r, _ := New(master, sink)
	r.AddOwner(master, owner)

	amount := uint256.NewInt(1_000)
	if err := r.GiveShare(owner, stranger, amount); err != nil {
		t.Fatalf("give share: %v", err)
	}

	if got := r.Share(stranger); !got.Eq(amount) {
		t.Fatalf("expected stranger balance 1000, got %s", got.Dec())
	}
	if got := r.Share(owner); !got.Eq(uint256.NewInt(OwnerSeedShare - 1_000)) {
		t.Fatalf("unexpected owner balance %s", got.Dec())
	}
	last := sink.events[len(sink.events)-1]
	if last.Type != EventTransfer || last.Account != stranger || !last.Amount.Eq(amount) {
		t.Fatalf("expected Transfer(stranger, 1000), got %+v", last)
	}
}

func TestGiveShareErrors(t *testing.T) {
	master, owner, stranger := addr(1), addr(2), addr(3)
	r, _ := New(master, nil)
	r.AddOwner(master, owner)

	if err := r.GiveShare(stranger, owner, uint256.NewInt(1)); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected unauthorized, got %v", err)
	}
	over := uint256.NewInt(OwnerSeedShare + 1)
	if err := r.GiveShare(owner, stranger, over); !errors.Is(err, ErrInsufficientShare) {
		t.Fatalf("expected insufficient share, got %v", err)
	}
	if !r.Share(stranger).IsZero() {
		t.Fatalf("failed transfer credited receiver")
	}
}

func TestAddShareRequiresOwnerReceiver(t *testing.T) {
	master, a, b := addr(1), addr(2), addr(3)
	r, _ := New(master, nil)
	r.AddOwner(master, a)
	r.AddOwner(master, b)

	if err := r.AddShare(a, b, uint256.NewInt(500)); err != nil {
		t.Fatalf("add share between owners: %v", err)
	}
	if got := r.Share(b); !got.Eq(uint256.NewInt(OwnerSeedShare + 500)) {
		t.Fatalf("unexpected receiver balance %s", got.Dec())
	}

	// The master is not an owner here, so it is not a valid receiver.
	if err := r.AddShare(a, master, uint256.NewInt(1)); !errors.Is(err, ErrInvalidReceiver) {
		t.Fatalf("expected invalid receiver for master, got %v", err)
	}

	r.RemoveOwner(master, b)
	if err := r.AddShare(a, b, uint256.NewInt(1)); !errors.Is(err, ErrInvalidReceiver) {
		t.Fatalf("expected invalid receiver for removed owner, got %v", err)
	}
}

func TestLedgerScenario(t *testing.T) {
	master := addr(1)
	a, b, z := addr(2), addr(3), addr(4)
	r, err := New(master, nil)
	if err != nil {
		t.Fatalf("new registry: %v", err)
	}

	if r.Master() != master {
		t.Fatalf("master mismatch")
	}
	if !r.Share(master).Eq(uint256.NewInt(10_000_000)) {
		t.Fatalf("master share %s", r.Share(master).Dec())
	}

	r.AddOwner(master, a)
	if got := r.Owners(); len(got) != 1 || got[0] != a {
		t.Fatalf("owners after first add: %v", got)
	}
	if !r.Share(a).Eq(uint256.NewInt(5_000_000)) {
		t.Fatalf("owner a share %s", r.Share(a).Dec())
	}

	r.AddOwner(master, b)
	if got := r.Owners(); len(got) != 2 || got[0] != a || got[1] != b {
		t.Fatalf("owners after second add: %v", got)
	}

	if err := r.RemoveOwner(master, a); err != nil {
		t.Fatalf("remove a: %v", err)
	}
	if got := r.Owners(); len(got) != 1 || got[0] != b {
		t.Fatalf("expected b swapped into a's slot, got %v", got)
	}

	if err := r.AddShare(b, a, uint256.NewInt(100)); !errors.Is(err, ErrInvalidReceiver) {
		t.Fatalf("expected invalid receiver after removal, got %v", err)
	}

	if err := r.GiveShare(b, z, uint256.NewInt(1_000)); err != nil {
		t.Fatalf("give share to stranger: %v", err)
	}
	if !r.Share(z).Eq(uint256.NewInt(1_000)) {
		t.Fatalf("stranger share %s", r.Share(z).Dec())
	}
	if !r.Share(b).Eq(uint256.NewInt(5_000_000 - 1_000)) {
		t.Fatalf("owner b share %s", r.Share(b).Dec())
	}
}

func TestShareConservation(t *testing.T) {
	master := addr(1)
	r, _ := New(master, nil)

	owners := []Address{addr(2), addr(3), addr(4)}
	for _, o := range owners {
		if err := r.AddOwner(master, o); err != nil {
			t.Fatalf("add owner: %v", err)
		}
	}
	// Re-adds must not raise the total.
	r.AddOwner(master, owners[0])

	r.GiveShare(master, addr(9), uint256.NewInt(123_456))
	r.GiveShare(owners[0], owners[1], uint256.NewInt(42))
	r.AddShare(owners[1], owners[2], uint256.NewInt(7))
	r.RemoveOwner(master, owners[2])

	want := uint256.NewInt(MasterSeedShare + 3*OwnerSeedShare)
	if got := TotalShare(r); !got.Eq(want) {
		t.Fatalf("total share %s, want %s", got.Dec(), want.Dec())
	}
}

func TestEventsJournalOrder(t *testing.T) {
	master, owner := addr(1), addr(2)
	r, _ := New(master, nil)
	r.AddOwner(master, owner)
	r.GiveShare(owner, addr(3), uint256.NewInt(5))
	r.RemoveOwner(master, owner)

	events := r.Events()
	wantTypes := []EventType{EventMasterSetup, EventOwnerAddition, EventTransfer, EventOwnerRemoval}
	if len(events) != len(wantTypes) {
		t.Fatalf("expected %d events, got %d", len(wantTypes), len(events))
	}
	for i, ev := range events {
		if ev.Type != wantTypes[i] {
			t.Fatalf("event %d: expected %s, got %s", i, wantTypes[i], ev.Type)
		}
		if ev.Seq != uint64(i+1) {
			t.Fatalf("event %d: expected seq %d, got %d", i, i+1, ev.Seq)
		}
	}
}

func TestConcurrentTransfersKeepTotal(t *testing.T) {
	master, owner := addr(1), addr(2)
	r, _ := New(master, nil)
	r.AddOwner(master, owner)

	const workers = 10
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			receiver := addr(byte(100 + i))
			if err := r.GiveShare(owner, receiver, uint256.NewInt(500)); err != nil {
				t.Errorf("transfer %d failed: %v", i, err)
			}
		}(i)
	}
	wg.Wait()

	want := uint256.NewInt(MasterSeedShare + OwnerSeedShare)
	if got := TotalShare(r); !got.Eq(want) {
		t.Fatalf("total share %s after concurrency, want %s", got.Dec(), want.Dec())
	}
}

func TestShareDefaultsToZero(t *testing.T) {
	r, _ := New(addr(1), nil)
	for i := byte(50); i < 53; i++ {
		if got := r.Share(addr(i)); !got.IsZero() {
			t.Fatalf("expected zero share for %s, got %s", addr(i), got.Dec())
		}
	}
}

func TestOwnersMatchesIsOwner(t *testing.T) {
	master := addr(1)
	r, _ := New(master, nil)
	for i := byte(2); i < 8; i++ {
		r.AddOwner(master, addr(i))
	}
	r.RemoveOwner(master, addr(4))
	r.RemoveOwner(master, addr(7))

	listed := make(map[Address]bool)
	for _, o := range r.Owners() {
		if listed[o] {
			t.Fatalf("duplicate owner %s in list", o)
		}
		listed[o] = true
		if !r.IsOwner(o) {
			t.Fatalf("listed owner %s fails membership check", o)
		}
	}
	for i := byte(2); i < 8; i++ {
		if r.IsOwner(addr(i)) != listed[addr(i)] {
			t.Fatalf("membership mismatch for %s", addr(i))
		}
	}
	if got := len(r.Owners()); got != 4 {
		t.Fatalf("expected 4 owners, got %d", got)
	}
}
