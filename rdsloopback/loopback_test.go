package rdsloopback

import "testing"

func TestSendReceiveRoundTrip(t *testing.T) {
	ch := New()

	if got := ch.Receive(); got != nil {
		t.Fatalf("Receive on empty channel = %v, want nil", got)
	}

	if err := ch.Send([]byte{1, 2, 3}); err != nil {
		t.Fatalf("Send: %v", err)
	}
	if err := ch.Send([]byte{4, 5}); err != nil {
		t.Fatalf("Send: %v", err)
	}

	got := ch.Receive()
	want := []byte{1, 2, 3, 4, 5}
	if string(got) != string(want) {
		t.Fatalf("Receive = %v, want %v", got, want)
	}
}

func TestReceiveClearsBuffer(t *testing.T) {
	ch := New()
	if err := ch.Send([]byte{9}); err != nil {
		t.Fatalf("Send: %v", err)
	}
	ch.Receive()

	if got := ch.Receive(); got != nil {
		t.Fatalf("second Receive = %v, want nil after buffer cleared", got)
	}
}
