// Package apitest provides an in-memory contacts backend for tests.
// It serves the same REST contract as the real backend: list, create and
// delete under /api/contacts.
package apitest

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/smileynet/contactbook/internal/contact"
)

// Route names accepted by Fail and Count.
const (
	RouteList   = "list"
	RouteCreate = "create"
	RouteDelete = "delete"
)

// Backend is a fake contacts backend. All methods are safe for concurrent use.
type Backend struct {
	URL string

	mu       sync.Mutex
	contacts []contact.Contact
	failures map[string]int
	counts   map[string]int
	created  []contact.Input
	srv      *httptest.Server
}

// NewBackend starts a fake backend seeded with contacts and registers its
// shutdown with t.Cleanup.
func NewBackend(t testing.TB, seed ...contact.Contact) *Backend {
	t.Helper()
	gin.SetMode(gin.TestMode)

	b := &Backend{
		contacts: append([]contact.Contact(nil), seed...),
		failures: make(map[string]int),
		counts:   make(map[string]int),
	}
	b.srv = httptest.NewServer(b.router())
	b.URL = b.srv.URL
	t.Cleanup(b.srv.Close)
	return b
}

// Fail makes every later request on route answer with status code.
// A code of 0 restores normal behaviour.
func (b *Backend) Fail(route string, code int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if code == 0 {
		delete(b.failures, route)
		return
	}
	b.failures[route] = code
}

// Count returns how many requests route has received.
func (b *Backend) Count(route string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.counts[route]
}

// Total returns how many requests the backend has received on any route.
func (b *Backend) Total() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	n := 0
	for _, c := range b.counts {
		n += c
	}
	return n
}

// Contacts returns a copy of the stored contacts.
func (b *Backend) Contacts() []contact.Contact {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]contact.Contact(nil), b.contacts...)
}

// Created returns the request bodies of every accepted create request.
func (b *Backend) Created() []contact.Input {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]contact.Input(nil), b.created...)
}

func (b *Backend) router() http.Handler {
	r := gin.New()
	r.GET("/api/contacts", b.handleList)
	r.POST("/api/contacts", b.handleCreate)
	r.DELETE("/api/contacts/:id", b.handleDelete)
	return r
}

// begin counts the request and reports an injected failure, if any.
func (b *Backend) begin(c *gin.Context, route string) bool {
	b.mu.Lock()
	b.counts[route]++
	code := b.failures[route]
	b.mu.Unlock()

	if code != 0 {
		c.JSON(code, gin.H{"error": http.StatusText(code)})
		return false
	}
	return true
}

func (b *Backend) handleList(c *gin.Context) {
	if !b.begin(c, RouteList) {
		return
	}
	c.JSON(http.StatusOK, b.Contacts())
}

func (b *Backend) handleCreate(c *gin.Context) {
	if !b.begin(c, RouteCreate) {
		return
	}
	var in contact.Input
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}
	if strings.TrimSpace(in.Name) == "" || !contact.ValidatePhone(in.Phone).OK {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "name and phone are required"})
		return
	}

	created := contact.Contact{ID: contact.ID(uuid.NewString()), Name: in.Name, Phone: in.Phone}
	b.mu.Lock()
	b.contacts = append(b.contacts, created)
	b.created = append(b.created, in)
	b.mu.Unlock()

	c.JSON(http.StatusCreated, created)
}

func (b *Backend) handleDelete(c *gin.Context) {
	if !b.begin(c, RouteDelete) {
		return
	}
	id := contact.ID(c.Param("id"))

	b.mu.Lock()
	defer b.mu.Unlock()
	for i, existing := range b.contacts {
		if existing.ID == id {
			b.contacts = append(b.contacts[:i], b.contacts[i+1:]...)
			c.Status(http.StatusNoContent)
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"error": "contact not found"})
}
