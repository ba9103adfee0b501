// Package qrcode prints a scannable join-URL QR code to the terminal when
// the server starts, the console equivalent of the PNG QR endpoint other
// party-game servers in the corpus expose over HTTP.
package qrcode

import (
	"fmt"

	"github.com/skip2/go-qrcode"
)

// PrintToTerminal renders url as a QR code using block characters and
// writes it to stdout.
func PrintToTerminal(url string) error {
	qr, err := qrcode.New(url, qrcode.Medium)
	if err != nil {
		return fmt.Errorf("generating qr code: %w", err)
	}
	fmt.Println(qr.ToSmallString(false))
	return nil
}
