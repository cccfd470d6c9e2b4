package session

import (
	"errors"
	"testing"
)

func TestStoreCreateAndGet(t *testing.T) {
	store := NewStore()
	created := store.Create()
	if created.ID == "" {
		t.Fatal("created session has no ID")
	}
	if created.ViewStage != StageOverview {
		t.Errorf("new session stage = %q", created.ViewStage)
	}

	got, err := store.Get(created.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.ID != created.ID {
		t.Errorf("Get returned %q", got.ID)
	}

	_, err = store.Get("nope")
	var notFound ErrNotFound
	if !errors.As(err, &notFound) {
		t.Errorf("Get(nope) error = %v", err)
	}
}

func TestStoreListNewestFirst(t *testing.T) {
	store := NewStore()
	first := store.Create()
	second := store.Create()
	third := store.Create()

	list := store.List()
	if len(list) != 3 {
		t.Fatalf("List returned %d sessions", len(list))
	}
	// UUIDv7 IDs are time-ordered, so creation order is recoverable even
	// when timestamps collide.
	if list[0].ID != third.ID || list[2].ID != first.ID {
		t.Errorf("order = [%s %s %s], created [%s %s %s]",
			list[0].ID, list[1].ID, list[2].ID, first.ID, second.ID, third.ID)
	}
}

func TestStoreUpdate(t *testing.T) {
	store := NewStore()
	created := store.Create()

	var notified []string
	store.AddOnChangeListener(func(id string) { notified = append(notified, id) })

	updated, err := store.Update(created.ID, func(s *State) error {
		return s.SelectDistrict("강남구")
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.SelectedDistrict != "강남구" {
		t.Errorf("updated district = %q", updated.SelectedDistrict)
	}
	if !updated.UpdatedAt.After(created.UpdatedAt) && !updated.UpdatedAt.Equal(created.UpdatedAt) {
		t.Error("UpdatedAt went backwards")
	}
	if len(notified) != 1 || notified[0] != created.ID {
		t.Errorf("notifications = %v", notified)
	}

	// A failing mutation leaves the stored state untouched and silent.
	_, err = store.Update(created.ID, func(s *State) error {
		s.SelectedDistrict = "부분적용"
		return errors.New("boom")
	})
	if err == nil {
		t.Fatal("expected error from failing mutation")
	}
	got, _ := store.Get(created.ID)
	if got.SelectedDistrict != "강남구" {
		t.Errorf("failed update mutated state: %q", got.SelectedDistrict)
	}
	if len(notified) != 1 {
		t.Errorf("failed update notified listeners: %v", notified)
	}

	if _, err := store.Update("nope", func(*State) error { return nil }); err == nil {
		t.Error("Update on unknown session succeeded")
	}
}

func TestStoreUpdateReturnsCopy(t *testing.T) {
	store := NewStore()
	created := store.Create()
	updated, err := store.Update(created.ID, func(s *State) error {
		_, err := s.AddMessage(RoleUser, "hello")
		return err
	})
	if err != nil {
		t.Fatal(err)
	}
	updated.Messages[0].Content = "tampered"

	got, _ := store.Get(created.ID)
	if got.Messages[0].Content != "hello" {
		t.Error("Update leaked internal state to the caller")
	}
}

func TestStoreDelete(t *testing.T) {
	store := NewStore()
	created := store.Create()
	if err := store.Delete(created.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := store.Get(created.ID); err == nil {
		t.Error("deleted session still retrievable")
	}
	if err := store.Delete(created.ID); err == nil {
		t.Error("double delete succeeded")
	}
}

func TestStoreReset(t *testing.T) {
	store := NewStore()
	created := store.Create()
	_, err := store.Update(created.ID, func(s *State) error {
		if err := s.SelectDistrict("송파구"); err != nil {
			return err
		}
		if _, err := s.SetViewStage(StageComparison); err != nil {
			return err
		}
		_, err := s.AddMessage(RoleUser, "비교해줘")
		return err
	})
	if err != nil {
		t.Fatal(err)
	}

	reset, err := store.Reset(created.ID)
	if err != nil {
		t.Fatalf("Reset: %v", err)
	}
	if reset.ViewStage != StageOverview || reset.SelectedDistrict != "" || len(reset.Messages) != 0 {
		t.Errorf("reset state = %+v", reset)
	}
}
