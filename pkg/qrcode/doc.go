// Package qrcode renders otpauth:// provisioning URIs (or any other string)
// as QR code images, either as raw PNG bytes or as a data-URI string that can
// be embedded directly into an enrollment page.
//
// The package is a thin wrapper around github.com/skip2/go-qrcode that adds
// input validation and a sensible default size.
//
//	img, err := qrcode.Generate(uri, 256)
//	dataURI, err := qrcode.GenerateBase64Image(uri, 256)
//
// Errors are declared as package-level variables and can be compared with
// errors.Is.
package qrcode
