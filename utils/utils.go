package utils

import (
	"crypto/rand"
	"fmt"
	"lot/config"
	"math/big"
	"time"
)

const certificateCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GenerateCertificateNumber builds a certificate number of the form
// CERT-YYYYMMDD-XXXXXX (UTC date, 6 random uppercase alphanumerics).
// Numbers are not collision-free by construction; the unique column
// constraint on certificates is the authority.
func GenerateCertificateNumber() string {
	suffix := make([]byte, 6)
	for i := range suffix {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(certificateCharset))))
		if err != nil {
			// crypto/rand only fails if the OS entropy source is broken
			panic(err)
		}
		suffix[i] = certificateCharset[n.Int64()]
	}
	return fmt.Sprintf("CERT-%s-%s", time.Now().UTC().Format("20060102"), string(suffix))
}

// CertificateURL builds the public download URL for a certificate number
func CertificateURL(certificateNumber string) string {
	return fmt.Sprintf("%s/%s.pdf", config.AppConfig.CertificateBaseURL, certificateNumber)
}
