package services

import (
	"bytes"
	"fmt"
	"net"
	"time"

	"golang.org/x/text/encoding/traditionalchinese"
)

// Star printer commands. The drawer pulse rides the same 9100 byte stream as
// receipts; ESC BEL is the kick the MC-Print3 responds to.
var (
	cmdInit        = []byte{0x1b, 0x40}             // ESC @
	cmdChineseMode = []byte{0x1b, 0x1d, 0x74, 0x01} // Big5 code page
	cmdOpenDrawer  = []byte{0x1b, 0x07}             // ESC BEL
	cmdCutFull     = []byte{0x1b, 0x69}             // ESC i
	cmdCutFeed     = []byte{0x1b, 0x64, 0x02}       // ESC d 2
)

// PrinterService talks to the receipt printer / cash-drawer over a raw TCP
// socket with a bounded timeout. Every call is independent and best-effort;
// callers already committed the financial transaction before invoking it.
type PrinterService struct {
	Addr    string
	Timeout time.Duration
}

func NewPrinterService(addr string, timeout time.Duration) *PrinterService {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &PrinterService{Addr: addr, Timeout: timeout}
}

// PrintReceipt renders and prints the settled lines with their total.
func (p *PrinterService) PrintReceipt(r Receipt) error {
	text := formatReceiptText(r)

	encoded, err := traditionalchinese.Big5.NewEncoder().Bytes([]byte(text))
	if err != nil {
		return fmt.Errorf("encode receipt: %w", err)
	}

	var job bytes.Buffer
	job.Write(cmdInit)
	job.Write(cmdChineseMode)
	job.Write(encoded)
	job.Write(cmdCutFeed)
	return p.send(job.Bytes())
}

// OpenDrawer pulses the cash drawer.
func (p *PrinterService) OpenDrawer() error {
	var job bytes.Buffer
	job.Write(cmdInit)
	job.Write(cmdOpenDrawer)
	job.Write(cmdCutFull)
	return p.send(job.Bytes())
}

func (p *PrinterService) send(job []byte) error {
	conn, err := net.DialTimeout("tcp", p.Addr, p.Timeout)
	if err != nil {
		return fmt.Errorf("connect printer %s: %w", p.Addr, err)
	}
	defer conn.Close()

	if err := conn.SetDeadline(time.Now().Add(p.Timeout)); err != nil {
		return err
	}
	if _, err := conn.Write(job); err != nil {
		return fmt.Errorf("write printer job: %w", err)
	}
	return nil
}

func formatReceiptText(r Receipt) string {
	var b bytes.Buffer
	b.WriteString("================================\n")
	fmt.Fprintf(&b, "       餐廳POS收據\n")
	fmt.Fprintf(&b, "       桌號: %s\n", r.TableNumber)
	b.WriteString("--------------------------------\n")
	b.WriteString("品項      數量      單價      小計\n")
	b.WriteString("--------------------------------\n")
	for _, it := range r.Items {
		fmt.Fprintf(&b, "%-8s%4d%8d%8d\n", it.Name, it.Quantity, it.Price, it.LineTotal())
	}
	b.WriteString("--------------------------------\n")
	fmt.Fprintf(&b, "總金額: %24d\n", r.Total)
	b.WriteString("================================\n\n\n")
	return b.String()
}
