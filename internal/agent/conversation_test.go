package agent

import "testing"

func TestConversationSnapshotIsolation(t *testing.T) {
	c := NewConversation()
	c.Append(NewUserTurn("one"))

	snap := c.Snapshot()
	c.Append(NewUserTurn("two"))
	if len(snap) != 1 {
		t.Errorf("Snapshot grew with the conversation: %d", len(snap))
	}

	snap[0].Text = "mutated"
	if c.Snapshot()[0].Text != "one" {
		t.Error("Mutating a snapshot changed the conversation")
	}
}

func TestConversationReset(t *testing.T) {
	c := NewConversation()
	c.Append(NewUserTurn("one"))
	c.Append(NewAssistantTurn("two", "", nil))
	if c.Len() != 2 {
		t.Fatalf("Expected 2 turns, got %d", c.Len())
	}

	c.Reset()
	if c.Len() != 0 {
		t.Errorf("Expected empty conversation after reset, got %d", c.Len())
	}

	c.Append(NewUserTurn("three"))
	if c.Len() != 1 {
		t.Errorf("Expected conversation usable after reset, got %d", c.Len())
	}
}
