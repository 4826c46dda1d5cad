package tunnel

import (
	"context"
	"crypto/ed25519"
	"crypto/rand"
	"errors"
	"io"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"golang.org/x/crypto/ssh"

	ncerr "tcpchat/internal/errors"
	"tcpchat/util"
)

// startGateway runs an in-process SSH server that accepts any client
// and honours direct-tcpip forwarding requests.
func startGateway(t *testing.T) (host string, port int) {
	t.Helper()

	_, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		t.Fatal(err)
	}
	signer, err := ssh.NewSignerFromKey(priv)
	if err != nil {
		t.Fatal(err)
	}
	cfg := &ssh.ServerConfig{NoClientAuth: true}
	cfg.AddHostKey(signer)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { ln.Close() })

	go func() {
		for {
			c, err := ln.Accept()
			if err != nil {
				return
			}
			go serveGateway(c, cfg)
		}
	}()

	addr := ln.Addr().(*net.TCPAddr)
	return addr.IP.String(), addr.Port
}

func serveGateway(c net.Conn, cfg *ssh.ServerConfig) {
	sconn, chans, reqs, err := ssh.NewServerConn(c, cfg)
	if err != nil {
		c.Close()
		return
	}
	defer sconn.Close()
	go ssh.DiscardRequests(reqs)

	for nc := range chans {
		if nc.ChannelType() != "direct-tcpip" {
			nc.Reject(ssh.UnknownChannelType, "unsupported") //nolint:errcheck
			continue
		}
		var req struct {
			Host     string
			Port     uint32
			OrigHost string
			OrigPort uint32
		}
		if err := ssh.Unmarshal(nc.ExtraData(), &req); err != nil {
			nc.Reject(ssh.ConnectionFailed, err.Error()) //nolint:errcheck
			continue
		}
		target, err := net.Dial("tcp", net.JoinHostPort(req.Host, strconv.Itoa(int(req.Port))))
		if err != nil {
			nc.Reject(ssh.ConnectionFailed, err.Error()) //nolint:errcheck
			continue
		}
		ch, creqs, err := nc.Accept()
		if err != nil {
			target.Close()
			continue
		}
		go ssh.DiscardRequests(creqs)
		go func() {
			io.Copy(ch, target) //nolint:errcheck
			ch.Close()
		}()
		go func() {
			io.Copy(target, ch) //nolint:errcheck
			target.Close()
		}()
	}
}

func newTestTunnel(t *testing.T, host string, port int) *SSHTunnel {
	t.Helper()
	keyPath := filepath.Join(t.TempDir(), "id_test")
	writeTestKey(t, keyPath)
	return NewSSHTunnel(&SSHConfig{
		User:    "chat",
		Host:    host,
		Port:    port,
		KeyPath: keyPath,
	}, util.NewLogger(0))
}

// TestSSHTunnel_Forward verifies a chat stream round-trips through the
// gateway and that the forwarded conn honours read deadlines.
func TestSSHTunnel_Forward(t *testing.T) {
	chat, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	defer chat.Close()

	got := make(chan string, 1)
	go func() {
		conn, err := chat.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		buf := make([]byte, 64)
		n, _ := conn.Read(buf)
		got <- string(buf[:n])
		conn.Write([]byte("Alice> hi!")) //nolint:errcheck
		time.Sleep(200 * time.Millisecond)
	}()

	host, port := startGateway(t)
	tun := newTestTunnel(t, host, port)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := tun.Connect(ctx); err != nil {
		t.Fatalf("Connect: %v", err)
	}
	defer tun.Close()
	if !tun.IsAlive() {
		t.Fatal("tunnel should be alive after Connect")
	}

	conn, err := tun.Dial(ctx, "tcp", chat.Addr().String())
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	defer conn.Close()

	if _, err := conn.Write([]byte("viewer")); err != nil {
		t.Fatalf("write: %v", err)
	}
	select {
	case frame := <-got:
		if frame != "viewer" {
			t.Errorf("server got %q, want %q", frame, "viewer")
		}
	case <-time.After(3 * time.Second):
		t.Fatal("timeout waiting for frame")
	}

	buf := make([]byte, 64)
	conn.SetReadDeadline(time.Now().Add(3 * time.Second)) //nolint:errcheck
	n, err := conn.Read(buf)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(buf[:n]) != "Alice> hi!" {
		t.Errorf("read %q", buf[:n])
	}

	// Server is now idle: a short deadline must expire, not hang.
	conn.SetReadDeadline(time.Now().Add(20 * time.Millisecond)) //nolint:errcheck
	if _, err := conn.Read(buf); !errors.Is(err, os.ErrDeadlineExceeded) {
		t.Errorf("idle read err = %v, want deadline exceeded", err)
	}

	// Server closes: EOF comes through.
	conn.SetReadDeadline(time.Now().Add(3 * time.Second)) //nolint:errcheck
	if _, err := conn.Read(buf); err != io.EOF {
		t.Errorf("read after server close err = %v, want EOF", err)
	}
}

// TestSSHTunnel_DialBeforeConnect verifies Dial requires Connect.
func TestSSHTunnel_DialBeforeConnect(t *testing.T) {
	tun := NewSSHTunnel(&SSHConfig{Host: "gw"}, util.NewLogger(0))
	_, err := tun.Dial(context.Background(), "tcp", "127.0.0.1:6000")
	if !errors.Is(err, ncerr.ErrNotConnected) {
		t.Fatalf("err = %v, want ErrNotConnected", err)
	}
}

// TestSSHTunnel_ConnectRefused verifies a dead gateway is reported as a
// network error.
func TestSSHTunnel_ConnectRefused(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	port := ln.Addr().(*net.TCPAddr).Port
	ln.Close()

	tun := newTestTunnel(t, "127.0.0.1", port)
	err = tun.Connect(context.Background())
	var ne *ncerr.NetworkError
	if !errors.As(err, &ne) {
		t.Fatalf("err = %v, want *NetworkError", err)
	}
	if tun.IsAlive() {
		t.Error("tunnel should not be alive")
	}
}

// TestSSHTunnel_CloseIdempotent verifies Close can be called twice.
func TestSSHTunnel_CloseIdempotent(t *testing.T) {
	host, port := startGateway(t)
	tun := newTestTunnel(t, host, port)
	if err := tun.Connect(context.Background()); err != nil {
		t.Fatal(err)
	}
	if err := tun.Close(); err != nil {
		t.Fatalf("first Close: %v", err)
	}
	if err := tun.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}
	if tun.IsAlive() {
		t.Error("tunnel should not be alive after Close")
	}
}
