package linecast_test

import (
	"context"
	"errors"
	"net"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/bft-labs/linecast"
	pkg "github.com/bft-labs/linecast/pkg/linecast"
)

func TestRun(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "a.txt"), []byte("one\r\ntwo\r\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	rx, err := net.ListenUDP("udp4", &net.UDPAddr{IP: net.IPv4(127, 0, 0, 1)})
	if err != nil {
		t.Fatal(err)
	}
	defer rx.Close()

	st, err := linecast.Run(context.Background(), linecast.Config{Root: root}, linecast.Request{
		Address: "127.0.0.1",
		Port:    rx.LocalAddr().(*net.UDPAddr).Port,
		File:    "a.txt",
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if st.State != pkg.SessionCompleted || st.Cursor != 2 {
		t.Errorf("Run() status = %v cursor %d, want Completed cursor 2", st.State, st.Cursor)
	}

	buf := make([]byte, 64)
	for _, want := range []string{"one", "two"} {
		_ = rx.SetReadDeadline(time.Now().Add(2 * time.Second))
		n, _, err := rx.ReadFromUDP(buf)
		if err != nil {
			t.Fatalf("read: %v", err)
		}
		if got := string(buf[:n]); got != want {
			t.Errorf("datagram = %q, want %q", got, want)
		}
	}
}

func TestRun_Cancelled(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "a.txt"), []byte("one\ntwo\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	st, err := linecast.Run(ctx, linecast.Config{Root: root}, linecast.Request{
		Address:  "127.0.0.1",
		Port:     9,
		Interval: time.Hour,
		File:     "a.txt",
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if st.State != pkg.SessionCancelled {
		t.Errorf("Run() state = %v, want Cancelled", st.State)
	}
}

func TestRun_InvalidDestination(t *testing.T) {
	_, err := linecast.Run(context.Background(), linecast.Config{Root: t.TempDir()}, linecast.Request{
		Address: "not-an-ip",
		File:    "a.txt",
	})
	if !errors.Is(err, pkg.ErrInvalidDestination) {
		t.Errorf("Run() error = %v, want ErrInvalidDestination", err)
	}
}
