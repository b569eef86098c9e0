package cart

import "encoding/json"

// StorageKeyPrefix namespaces persisted cart blobs; the full key is the
// prefix plus the session id.
const StorageKeyPrefix = "motodealer-cart:"

// Line is one product entry plus its quantity. Product is the snapshot taken
// when the item was first added; later adds never overwrite it, so a
// mid-session price change cannot silently alter what the user selected.
type Line struct {
	Product  Snapshot `json:"product"`
	Quantity int      `json:"quantity"`
}

// Snapshot is the subset of product attributes the cart carries.
type Snapshot struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Brand    *string  `json:"brand,omitempty"`
	Model    *string  `json:"model,omitempty"`
	Year     *int     `json:"year,omitempty"`
	Price    *float64 `json:"price,omitempty"`
	ImageURL string   `json:"image_url,omitempty"`
}

// DealershipInfo is the contact metadata used when composing inquiries.
type DealershipInfo struct {
	Name         string `json:"name"`
	Phone        string `json:"phone,omitempty"`
	MainWhatsapp string `json:"main_whatsapp,omitempty"`
}

type state struct {
	Items          []Line          `json:"items"`
	DealershipInfo *DealershipInfo `json:"dealershipInfo"`
}

// Store holds the inquiry cart for one session: an ordered line collection
// plus dealership contact info. It is a plain single-owner state container;
// persistence happens through the OnChange subscriber, which receives the
// serialized snapshot after every mutation. Subscriber failures are the
// subscriber's problem; the in-memory state stays authoritative for the
// rest of the session.
type Store struct {
	st       state
	onChange func([]byte)
}

func NewStore() *Store {
	return &Store{st: state{Items: []Line{}}}
}

// Subscribe registers the persistence hook. It is called synchronously after
// every mutating operation with the current serialized state.
func (s *Store) Subscribe(fn func(snapshot []byte)) { s.onChange = fn }

// Load replaces the state with a previously serialized snapshot. Any
// malformed payload leaves the store empty; corrupt persisted carts recover
// silently rather than erroring.
func (s *Store) Load(blob []byte) {
	var st state
	if err := json.Unmarshal(blob, &st); err != nil {
		s.st = state{Items: []Line{}}
		return
	}
	if st.Items == nil {
		st.Items = []Line{}
	}
	for _, ln := range st.Items {
		if ln.Product.ID == "" || ln.Quantity < 1 {
			s.st = state{Items: []Line{}}
			return
		}
	}
	s.st = st
}

// Serialize returns the persisted wire form: {"items":[...],"dealershipInfo":...}.
func (s *Store) Serialize() []byte {
	b, _ := json.Marshal(s.st)
	return b
}

func (s *Store) notify() {
	if s.onChange != nil {
		s.onChange(s.Serialize())
	}
}

// AddItem appends a new line with quantity 1, or bumps the quantity when the
// product is already present. The first-seen snapshot wins. Always succeeds.
func (s *Store) AddItem(p Snapshot) {
	for i := range s.st.Items {
		if s.st.Items[i].Product.ID == p.ID {
			s.st.Items[i].Quantity++
			s.notify()
			return
		}
	}
	s.st.Items = append(s.st.Items, Line{Product: p, Quantity: 1})
	s.notify()
}

// RemoveItem deletes the matching line; absent ids are a no-op.
func (s *Store) RemoveItem(productID string) {
	for i := range s.st.Items {
		if s.st.Items[i].Product.ID == productID {
			s.st.Items = append(s.st.Items[:i], s.st.Items[i+1:]...)
			s.notify()
			return
		}
	}
}

// UpdateQuantity sets (not increments) a line's quantity. Zero or negative
// removes the line.
func (s *Store) UpdateQuantity(productID string, quantity int) {
	if quantity <= 0 {
		s.RemoveItem(productID)
		return
	}
	for i := range s.st.Items {
		if s.st.Items[i].Product.ID == productID {
			s.st.Items[i].Quantity = quantity
			s.notify()
			return
		}
	}
}

// Clear empties the line collection; dealership info is preserved.
func (s *Store) Clear() {
	s.st.Items = []Line{}
	s.notify()
}

// SetDealershipInfo overwrites the stored contact metadata.
func (s *Store) SetDealershipInfo(info DealershipInfo) {
	s.st.DealershipInfo = &info
	s.notify()
}

// Items returns the lines in insertion order.
func (s *Store) Items() []Line { return s.st.Items }

func (s *Store) DealershipInfo() *DealershipInfo { return s.st.DealershipInfo }

// TotalItems is the sum of quantities across all lines.
func (s *Store) TotalItems() int {
	total := 0
	for _, ln := range s.st.Items {
		total += ln.Quantity
	}
	return total
}

// TotalPrice sums price*quantity; lines without a price contribute 0.
func (s *Store) TotalPrice() float64 {
	total := 0.0
	for _, ln := range s.st.Items {
		if ln.Product.Price != nil {
			total += *ln.Product.Price * float64(ln.Quantity)
		}
	}
	return total
}
