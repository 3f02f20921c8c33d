package domain

import (
	"errors"
	"testing"
	"time"
)

func TestNewItem(t *testing.T) {
	item, err := NewItem(7, "Buy milk")

	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if item.ID != 0 {
		t.Errorf("Expected zero ID before insert, got %d", item.ID)
	}

	if item.TodoID != 7 {
		t.Errorf("Expected todo ID 7, got %d", item.TodoID)
	}

	if item.Name != "Buy milk" {
		t.Errorf("Expected name %q, got %q", "Buy milk", item.Name)
	}

	if item.Done {
		t.Error("Expected new item to not be done")
	}

	if item.CreatedAt.IsZero() {
		t.Error("Expected non-zero CreatedAt time")
	}

	if item.UpdatedAt.IsZero() {
		t.Error("Expected non-zero UpdatedAt time")
	}

	// Test missing parent list
	_, err = NewItem(0, "Buy milk")
	if !errors.Is(err, ErrEmptyItemTodoID) {
		t.Errorf("Expected error %v, got %v", ErrEmptyItemTodoID, err)
	}

	// Test missing name
	_, err = NewItem(7, "")
	if !errors.Is(err, ErrEmptyItemName) {
		t.Errorf("Expected error %v, got %v", ErrEmptyItemName, err)
	}
}

func TestItemValidate(t *testing.T) {
	validItem := Item{
		ID:     1,
		TodoID: 7,
		Name:   "Buy milk",
	}

	if err := validItem.Validate(); err != nil {
		t.Errorf("Expected no error, got %v", err)
	}

	invalidItem := validItem
	invalidItem.TodoID = 0
	if err := invalidItem.Validate(); !errors.Is(err, ErrEmptyItemTodoID) {
		t.Errorf("Expected error %v, got %v", ErrEmptyItemTodoID, err)
	}

	invalidItem = validItem
	invalidItem.Name = ""
	if err := invalidItem.Validate(); !errors.Is(err, ErrEmptyItemName) {
		t.Errorf("Expected error %v, got %v", ErrEmptyItemName, err)
	}

	if err := invalidItem.Validate(); !IsValidationError(err) {
		t.Errorf("Expected a validation error, got %v", err)
	}
}

func TestItemSetDone(t *testing.T) {
	item, err := NewItem(7, "Buy milk")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	before := item.UpdatedAt
	time.Sleep(time.Millisecond)

	item.SetDone(true)

	if !item.Done {
		t.Error("Expected item to be done")
	}

	if !item.UpdatedAt.After(before) {
		t.Error("Expected UpdatedAt to advance")
	}

	item.SetDone(false)
	if item.Done {
		t.Error("Expected item to not be done")
	}
}
