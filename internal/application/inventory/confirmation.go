package inventory

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// pendingSale guarda la venta pendiente de confirmar asociada a un token.
type pendingSale struct {
	productID int64
	sizeID    *int64
	cantidad  int
	expiresAt time.Time
}

// ConfirmationStore emite y canjea tokens de confirmación para ventas.
// La venta es irreversible de cara al cliente, así que el motor exige dos
// pasos: pedir token y reinvocar con él. Los tokens caducan y son de un
// solo uso. Guardado en memoria: la confirmación es parte de la sesión del
// administrador, no estado durable.
type ConfirmationStore struct {
	mu     sync.Mutex
	ttl    time.Duration
	tokens map[string]pendingSale
	now    func() time.Time
}

// NewConfirmationStore construye el almacén con el TTL indicado (<=0 usa 5m).
func NewConfirmationStore(ttl time.Duration) *ConfirmationStore {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &ConfirmationStore{
		ttl:    ttl,
		tokens: make(map[string]pendingSale),
		now:    time.Now,
	}
}

// Issue registra una venta pendiente y devuelve su token.
func (s *ConfirmationStore) Issue(productID int64, sizeID *int64, cantidad int) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.purgeLocked()
	token := uuid.New().String()
	s.tokens[token] = pendingSale{
		productID: productID,
		sizeID:    sizeID,
		cantidad:  cantidad,
		expiresAt: s.now().Add(s.ttl),
	}
	return token
}

// Redeem consume el token si existe, no caducó y corresponde exactamente a la
// misma venta (producto, variante y cantidad). Un token canjeado no se puede
// reutilizar.
func (s *ConfirmationStore) Redeem(token string, productID int64, sizeID *int64, cantidad int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.purgeLocked()
	p, ok := s.tokens[token]
	if !ok {
		return false
	}
	if p.productID != productID || p.cantidad != cantidad || !sameSize(p.sizeID, sizeID) {
		return false
	}
	delete(s.tokens, token)
	return true
}

func (s *ConfirmationStore) purgeLocked() {
	now := s.now()
	for tok, p := range s.tokens {
		if now.After(p.expiresAt) {
			delete(s.tokens, tok)
		}
	}
}

func sameSize(a, b *int64) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
