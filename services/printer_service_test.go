package services

import (
	"bytes"
	"io"
	"net"
	"testing"
	"time"

	"github.com/cb023725/pos-project/entity"
)

// fakePrinter accepts one raw 9100 connection and captures the job bytes.
func fakePrinter(t *testing.T) (addr string, jobs <-chan []byte) {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	t.Cleanup(func() { ln.Close() })

	ch := make(chan []byte, 4)
	go func() {
		for {
			conn, err := ln.Accept()
			if err != nil {
				return
			}
			data, _ := io.ReadAll(conn)
			conn.Close()
			ch <- data
		}
	}()
	return ln.Addr().String(), ch
}

func recvJob(t *testing.T, jobs <-chan []byte) []byte {
	t.Helper()
	select {
	case job := <-jobs:
		return job
	case <-time.After(2 * time.Second):
		t.Fatal("no job received")
		return nil
	}
}

func TestPrintReceiptJob(t *testing.T) {
	addr, jobs := fakePrinter(t)
	p := NewPrinterService(addr, time.Second)

	receipt := Receipt{
		TableNumber: "A1",
		Items: []entity.OrderItem{
			{Name: "白飯", Price: 30, Quantity: 2, InternalID: "x"},
		},
		Total: 60,
	}
	if err := p.PrintReceipt(receipt); err != nil {
		t.Fatalf("PrintReceipt: %v", err)
	}

	job := recvJob(t, jobs)
	if !bytes.HasPrefix(job, append(append([]byte{}, cmdInit...), cmdChineseMode...)) {
		t.Fatalf("job must start with init + Big5 mode, got % x", job[:8])
	}
	if !bytes.HasSuffix(job, cmdCutFeed) {
		t.Fatalf("job must end with feed-and-cut, got % x", job[len(job)-4:])
	}
	// 白飯 in Big5 is a5 d5 b6 ba; utf-8 bytes must not appear on the wire
	if !bytes.Contains(job, []byte{0xa5, 0xd5, 0xb6, 0xba}) {
		t.Fatal("receipt body not Big5 encoded")
	}
	if !bytes.Contains(job, []byte("A1")) {
		t.Fatal("table number missing from receipt")
	}
}

func TestOpenDrawerJob(t *testing.T) {
	addr, jobs := fakePrinter(t)
	p := NewPrinterService(addr, time.Second)

	if err := p.OpenDrawer(); err != nil {
		t.Fatalf("OpenDrawer: %v", err)
	}

	job := recvJob(t, jobs)
	want := append(append(append([]byte{}, cmdInit...), cmdOpenDrawer...), cmdCutFull...)
	if !bytes.Equal(job, want) {
		t.Fatalf("drawer job = % x, want % x", job, want)
	}
}

func TestPrinterUnreachable(t *testing.T) {
	p := NewPrinterService("127.0.0.1:1", 200*time.Millisecond)
	if err := p.OpenDrawer(); err == nil {
		t.Fatal("expected connect error for unreachable printer")
	}
}

func TestReceiptTextTotals(t *testing.T) {
	text := formatReceiptText(Receipt{
		TableNumber: "A3",
		Items: []entity.OrderItem{
			{Name: "可樂", Price: 40, Quantity: 3, InternalID: "y"},
		},
		Total: 120,
	})
	if !bytes.Contains([]byte(text), []byte("桌號: A3")) {
		t.Fatal("table header missing")
	}
	if !bytes.Contains([]byte(text), []byte("120")) {
		t.Fatal("line total missing")
	}
	if !bytes.Contains([]byte(text), []byte("總金額")) {
		t.Fatal("grand total label missing")
	}
}
