// Package sample produces random registration drafts that pass every
// validation rule. All randomness comes from crypto/rand.
package sample

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"

	"github.com/zarlcorp/zform/internal/form"
)

// Generator produces sample drafts.
type Generator struct{}

// New creates a generator.
func New() *Generator {
	return &Generator{}
}

// Draft returns a complete, valid draft. An empty domain falls back to
// example.com.
func (g *Generator) Draft(domain string) form.Draft {
	first, last := g.Name()
	return form.Draft{
		FirstName:  first,
		LastName:   last,
		Email:      g.Email(first, last, domain),
		EmployeeID: g.EmployeeID(),
		Phone:      g.phone(),
		Location:   pick(cities) + ", " + pick(states),
	}
}

// Name generates a random first/last name pair.
func (g *Generator) Name() (first, last string) {
	return pick(firstNames), pick(lastNames)
}

// Email builds first.last@domain in lowercase.
func (g *Generator) Email(first, last, domain string) string {
	if domain == "" {
		domain = defaultDomain
	}
	local := strings.ToLower(first + "." + last)
	return local + "@" + strings.ToLower(domain)
}

// EmployeeID generates an id in the EMP-XXX form.
func (g *Generator) EmployeeID() string {
	return fmt.Sprintf("EMP-%03d", randIntn(1000))
}

// phone generates a US fictional phone number: (555) XXX-XXXX.
func (g *Generator) phone() string {
	line := randIntn(10000)
	prefix := 100 + randIntn(900)
	return fmt.Sprintf("(555) %03d-%04d", prefix, line)
}

func pick(s []string) string {
	return s[randIntn(len(s))]
}

// randIntn returns a cryptographically random int in [0, n).
func randIntn(n int) int {
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		// crypto/rand failure is unrecoverable
		panic("crypto/rand: " + err.Error())
	}
	return int(v.Int64())
}
