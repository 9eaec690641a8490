package chat

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Pedidos-api/internal/domain/entity"
)

// Config parámetros de construcción del resolver. OwnerPhone habilita los
// comandos de operador y salta el gate de onboarding; SessionTTL es la
// ventana de frescura de la ubicación de sesión.
type Config struct {
	OwnerPhone string
	SessionTTL time.Duration
	// Now es inyectable para tests; nil usa time.Now.
	Now func() time.Time
}

// Resolver clasifica cada mensaje entrante en exactamente una intención,
// evaluando una lista ordenada de reglas donde la primera que matchea gana.
// No tiene estado propio entre llamadas: solo referencias a colaboradores.
type Resolver struct {
	catalog  Catalog
	sessions SessionReader
	cfg      Config
	rules    []rule
}

// rule es un paso de la cadena de precedencia: devuelve nil si no matchea
// para ceder el turno a la siguiente regla.
type rule struct {
	name  string
	match func(*request) (*ParsedIntent, error)
}

// request contexto inmutable de una resolución.
type request struct {
	raw     string // mensaje original con espacios recortados
	msg     string // versión en minúsculas para matching
	phone   string
	isOwner bool
	state   State
	session *entity.CustomerSession
}

// NewResolver construye el resolver con la cadena de reglas en el orden
// documentado: pago → gate de onboarding → pedido → help → estado de pedido →
// comandos de operador → saludo/menú → búsqueda → unknown.
func NewResolver(catalog Catalog, sessions SessionReader, cfg Config) *Resolver {
	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = 30 * time.Minute
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	r := &Resolver{catalog: catalog, sessions: sessions, cfg: cfg}
	r.rules = []rule{
		{"payment", r.paymentRule},
		{"onboarding", r.onboardingRule},
		{"order", r.orderRule},
		{"help", r.helpRule},
		{"order_status", r.orderStatusRule},
		{"owner", r.ownerRule},
		{"greeting_menu", r.greetingMenuRule},
		{"search", r.searchRule},
		{"fallback", r.fallbackRule},
	}
	return r
}

// Resolve clasifica un mensaje del teléfono dado. Nunca falla por entrada
// malformada (el peor caso es IntentUnknown); solo retorna error cuando un
// colaborador (catálogo o store de sesiones) falla.
func (r *Resolver) Resolve(message, phone string) (*ParsedIntent, error) {
	session, err := r.sessions.Get(phone)
	if err != nil {
		return nil, fmt.Errorf("store de sesiones: %w", err)
	}

	req := &request{
		raw:     strings.TrimSpace(message),
		msg:     strings.ToLower(strings.TrimSpace(message)),
		phone:   phone,
		isOwner: r.cfg.OwnerPhone != "" && phone == r.cfg.OwnerPhone,
		state:   ResolveState(session, r.cfg.Now(), r.cfg.SessionTTL),
		session: session,
	}

	for _, rl := range r.rules {
		parsed, err := rl.match(req)
		if err != nil {
			return nil, err
		}
		if parsed != nil {
			return parsed, nil
		}
	}
	// La regla fallback siempre matchea; esto no debería alcanzarse.
	return &ParsedIntent{Intent: IntentUnknown, Data: map[string]any{"message": req.raw}}, nil
}

// ── Regla 1: comandos de pago ─────────────────────────────────────────────────
// Siempre se evalúa primero: una confirmación de pago debe procesarse incluso
// con el onboarding a medias.

var (
	payMethodRe      = regexp.MustCompile(`^pay\s+(cod|upi)$`)
	confirmPaymentRe = regexp.MustCompile(`(?i)^(?:paid|confirm payment)\s+(\S.*)$`)
)

func (r *Resolver) paymentRule(req *request) (*ParsedIntent, error) {
	if m := payMethodRe.FindStringSubmatch(req.msg); m != nil {
		return &ParsedIntent{
			Intent: IntentSelectPaymentMethod,
			Data:   map[string]any{"method": m[1]},
		}, nil
	}
	if m := confirmPaymentRe.FindStringSubmatch(req.raw); m != nil {
		// Se matchea contra el mensaje original (case-insensitive) para
		// conservar la referencia tal cual: los IDs tipo TXN... son
		// case-sensitive y el mapeo a minúsculas cambia longitudes en bytes.
		ref := strings.TrimSpace(m[1])
		return &ParsedIntent{
			Intent: IntentConfirmPayment,
			Data:   map[string]any{"transactionId": ref},
		}, nil
	}
	switch req.msg {
	case "payment status":
		return &ParsedIntent{Intent: IntentPaymentStatus, Data: map[string]any{}}, nil
	case "payment options":
		return &ParsedIntent{Intent: IntentPaymentOptions, Data: map[string]any{}}, nil
	case "payment help":
		return &ParsedIntent{Intent: IntentPaymentHelp, Data: map[string]any{}}, nil
	}
	return nil, nil
}

// ── Regla 2: intercepción de onboarding ──────────────────────────────────────

func (r *Resolver) onboardingRule(req *request) (*ParsedIntent, error) {
	if req.isOwner {
		// El dueño no pasa por onboarding.
		return nil, nil
	}
	return r.gateRule(req)
}

// ── Regla 3: pedidos ─────────────────────────────────────────────────────────

var (
	orderPrefixRe   = regexp.MustCompile(`^(?:order|want|get me|i want)\s+(.+)$`)
	segmentSplitRe  = regexp.MustCompile(`\s*(?:,|\+|\s+and\s+)\s*`)
	qtyItemIDRe     = regexp.MustCompile(`^(\d+)\s+item\s+(\S+)$`)
	qtyHashIDRe     = regexp.MustCompile(`^(\d+)\s+#(\S+)$`)
	qtyFreeformRe   = regexp.MustCompile(`^(\d+)\s+(.+)$`)
	trailingModesRe = regexp.MustCompile(`\s+(?:for\s+\S+.*|(?:for\s+)?(?:delivery|pickup|takeaway|dine-in)\b.*|(?:please|urgent|asap|now)\b.*)$`)
)

// resolvedLine una línea de pedido resuelta contra el catálogo.
type resolvedLine struct {
	item *entity.MenuItem
	qty  int
}

func (r *Resolver) orderRule(req *request) (*ParsedIntent, error) {
	m := orderPrefixRe.FindStringSubmatch(req.msg)
	if m == nil {
		return nil, nil
	}
	rest := m[1]

	// Gramática multi-ítem primero: separar por , / + / " and ".
	segments := segmentSplitRe.Split(rest, -1)
	var lines []resolvedLine
	attempted := 0
	for _, seg := range segments {
		seg = strings.TrimSpace(seg)
		if seg == "" {
			continue
		}
		attempted++
		line, err := r.resolveSegment(seg)
		if err != nil {
			return nil, err
		}
		if line != nil {
			lines = append(lines, *line)
		}
		// Segmentos que no resuelven se descartan en silencio.
	}

	dropped := attempted - len(lines)
	switch {
	case len(lines) >= 2:
		items := make([]entity.OrderItem, 0, len(lines))
		total := decimal.Zero
		for _, l := range lines {
			lineTotal := l.item.Price.Mul(decimal.NewFromInt(int64(l.qty)))
			items = append(items, entity.OrderItem{
				MenuItemID: l.item.ID,
				Name:       l.item.Name,
				Quantity:   l.qty,
				UnitPrice:  l.item.Price,
				LineTotal:  lineTotal,
			})
			total = total.Add(lineTotal)
		}
		return &ParsedIntent{
			Intent: IntentPlaceOrder,
			Data: map[string]any{
				"isMultipleItems": true,
				"items":           items,
				"totalAmount":     total,
			},
			DroppedSegments: dropped,
		}, nil

	case len(lines) == 1:
		// Forma single-item para compatibilidad con el manejo aguas abajo.
		l := lines[0]
		return &ParsedIntent{
			Intent: IntentPlaceOrder,
			Data: map[string]any{
				"isMultipleItems": false,
				"quantity":        l.qty,
				"menuItem":        l.item,
				"total":           l.item.Price.Mul(decimal.NewFromInt(int64(l.qty))),
			},
			DroppedSegments: dropped,
		}, nil
	}

	// Cero segmentos resueltos: intentar la gramática single-item sobre el
	// resto completo antes de ceder a reglas de menor precedencia.
	line, err := r.resolveSegment(strings.TrimSpace(rest))
	if err != nil {
		return nil, err
	}
	if line != nil {
		return &ParsedIntent{
			Intent: IntentPlaceOrder,
			Data: map[string]any{
				"isMultipleItems": false,
				"quantity":        line.qty,
				"menuItem":        line.item,
				"total":           line.item.Price.Mul(decimal.NewFromInt(int64(line.qty))),
			},
		}, nil
	}
	return nil, nil
}

// resolveSegment intenta la gramática single-item sobre un segmento:
// "<qty> item <id>", "<qty> #<id>" y por último "<qty> <nombre libre>".
// Devuelve nil (sin error) si el segmento no resuelve.
func (r *Resolver) resolveSegment(seg string) (*resolvedLine, error) {
	if m := qtyItemIDRe.FindStringSubmatch(seg); m != nil {
		return r.lineByID(m[1], m[2])
	}
	if m := qtyHashIDRe.FindStringSubmatch(seg); m != nil {
		return r.lineByID(m[1], m[2])
	}
	m := qtyFreeformRe.FindStringSubmatch(seg)
	if m == nil {
		return nil, nil
	}
	qty, ok := parseQuantity(m[1])
	if !ok {
		return nil, nil
	}
	name := strings.TrimSpace(trailingModesRe.ReplaceAllString(m[2], ""))
	if name == "" {
		return nil, nil
	}
	matches, err := r.catalog.SearchByName(name)
	if err != nil {
		return nil, fmt.Errorf("catálogo: %w", err)
	}
	if len(matches) == 0 {
		return nil, nil
	}
	// El primer resultado es autoritativo (orden estable del catálogo).
	return &resolvedLine{item: matches[0], qty: qty}, nil
}

func (r *Resolver) lineByID(qtyStr, id string) (*resolvedLine, error) {
	qty, ok := parseQuantity(qtyStr)
	if !ok {
		return nil, nil
	}
	item, err := r.catalog.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("catálogo: %w", err)
	}
	if item == nil {
		return nil, nil
	}
	return &resolvedLine{item: item, qty: qty}, nil
}

// parseQuantity acepta solo enteros >= 1; todo lo demás es un fallo de
// segmento, no un error.
func parseQuantity(s string) (int, bool) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 0, false
	}
	return n, true
}

// ── Reglas 4 y 5: help y estado de pedidos ───────────────────────────────────

var helpKeywords = []string{"help", "how", "commands", "instructions", "guide"}

var orderStatusKeywords = []string{
	"order status", "my orders", "recent orders", "check order", "status",
}

func (r *Resolver) helpRule(req *request) (*ParsedIntent, error) {
	for _, kw := range helpKeywords {
		if containsKeyword(req.msg, kw) {
			return &ParsedIntent{Intent: IntentHelp, Data: map[string]any{}}, nil
		}
	}
	return nil, nil
}

func (r *Resolver) orderStatusRule(req *request) (*ParsedIntent, error) {
	for _, kw := range orderStatusKeywords {
		if containsKeyword(req.msg, kw) {
			return &ParsedIntent{Intent: IntentOrderStatus, Data: map[string]any{}}, nil
		}
	}
	return nil, nil
}

// containsKeyword matchea la palabra o frase con límites de palabra, para que
// "show" no dispare "how" ni "orders" dispare "order" a medias.
func containsKeyword(msg, kw string) bool {
	idx := 0
	for {
		i := strings.Index(msg[idx:], kw)
		if i < 0 {
			return false
		}
		start := idx + i
		end := start + len(kw)
		beforeOK := start == 0 || !isWordChar(msg[start-1])
		afterOK := end == len(msg) || !isWordChar(msg[end])
		if beforeOK && afterOK {
			return true
		}
		idx = start + 1
	}
}

func isWordChar(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= '0' && b <= '9') || b == '_'
}

// ── Regla 6: comandos del operador ───────────────────────────────────────────
// Solo se evalúa desde el teléfono del dueño; input no reconocido cae a las
// reglas 7–9 como cualquier mensaje.

var (
	ownerOrdersRe     = regexp.MustCompile(`^orders(?:\s+(today|pending|completed))?$`)
	ownerCompleteIDRe = regexp.MustCompile(`^complete\s+order\s+(\S+)$`)
	ownerCompleteRe   = regexp.MustCompile(`^(?:complete|done)\s+(\S+)$`)
	ownerCancelRe     = regexp.MustCompile(`^cancel\s+order\s+(\S+)$`)
	ownerStatsRe      = regexp.MustCompile(`^(?:stats|summary|dashboard)$`)
	ownerMenuManageRe = regexp.MustCompile(`^(?:menu\s+manage|manage\s+menu|menu\s+admin)$`)
	ownerAddItemRe    = regexp.MustCompile(`(?i)^add\s+item\s+(.+)$`)
	ownerEditPriceRe  = regexp.MustCompile(`^edit\s+item\s+(.+?)\s+price\s+(\d+(?:\.\d+)?)$`)
	ownerEditNameRe   = regexp.MustCompile(`(?i)^edit\s+item\s+(.+?)\s+name\s+(.+)$`)
	ownerDeleteRe     = regexp.MustCompile(`^delete\s+item\s+(.+)$`)
	ownerToggleRe     = regexp.MustCompile(`^toggle\s+item\s+(.+)$`)
	bareNumberRe      = regexp.MustCompile(`^\d+(?:\.\d+)?$`)
)

func (r *Resolver) ownerRule(req *request) (*ParsedIntent, error) {
	if !req.isOwner {
		return nil, nil
	}
	if m := ownerOrdersRe.FindStringSubmatch(req.msg); m != nil {
		filter := m[1]
		if filter == "" {
			filter = "all"
		}
		return &ParsedIntent{Intent: IntentOwnerListOrders, Data: map[string]any{"filter": filter}}, nil
	}
	if m := ownerCompleteIDRe.FindStringSubmatch(req.msg); m != nil {
		return &ParsedIntent{Intent: IntentOwnerCompleteOrder, Data: map[string]any{"orderId": m[1]}}, nil
	}
	if m := ownerCompleteRe.FindStringSubmatch(req.msg); m != nil {
		return &ParsedIntent{Intent: IntentOwnerCompleteOrder, Data: map[string]any{"token": m[1]}}, nil
	}
	if m := ownerCancelRe.FindStringSubmatch(req.msg); m != nil {
		return &ParsedIntent{Intent: IntentOwnerCancelOrder, Data: map[string]any{"orderId": m[1]}}, nil
	}
	if ownerStatsRe.MatchString(req.msg) {
		return &ParsedIntent{Intent: IntentOwnerStats, Data: map[string]any{}}, nil
	}
	if ownerMenuManageRe.MatchString(req.msg) {
		return &ParsedIntent{Intent: IntentOwnerMenuManage, Data: map[string]any{}}, nil
	}
	if m := ownerAddItemRe.FindStringSubmatch(req.raw); m != nil {
		if parsed := parseAddItem(m[1]); parsed != nil {
			return parsed, nil
		}
		return nil, nil
	}
	if m := ownerEditPriceRe.FindStringSubmatch(req.msg); m != nil {
		price, err := decimal.NewFromString(m[2])
		if err != nil || price.IsNegative() {
			return nil, nil
		}
		return &ParsedIntent{
			Intent: IntentOwnerEditItem,
			Data:   map[string]any{"item": m[1], "field": "price", "price": price},
		}, nil
	}
	if m := ownerEditNameRe.FindStringSubmatch(req.raw); m != nil {
		return &ParsedIntent{
			Intent: IntentOwnerEditItem,
			Data:   map[string]any{"item": strings.ToLower(m[1]), "field": "name", "name": strings.TrimSpace(m[2])},
		}, nil
	}
	if m := ownerDeleteRe.FindStringSubmatch(req.msg); m != nil {
		return &ParsedIntent{Intent: IntentOwnerDeleteItem, Data: map[string]any{"item": m[1]}}, nil
	}
	if m := ownerToggleRe.FindStringSubmatch(req.msg); m != nil {
		return &ParsedIntent{Intent: IntentOwnerToggleItem, Data: map[string]any{"item": m[1]}}, nil
	}
	return nil, nil
}

// parseAddItem extrae nombre, precio y descripción de "add item <name> <price>
// [description]": el precio es el último número suelto; lo anterior es el
// nombre y lo posterior la descripción.
func parseAddItem(rest string) *ParsedIntent {
	tokens := strings.Fields(rest)
	priceIdx := -1
	for i, tok := range tokens {
		if bareNumberRe.MatchString(tok) {
			priceIdx = i
		}
	}
	if priceIdx < 1 {
		// Sin precio, o sin nombre antes del precio.
		return nil
	}
	price, err := decimal.NewFromString(tokens[priceIdx])
	if err != nil || !price.IsPositive() {
		return nil
	}
	return &ParsedIntent{
		Intent: IntentOwnerAddItem,
		Data: map[string]any{
			"name":        strings.Join(tokens[:priceIdx], " "),
			"price":       price,
			"description": strings.Join(tokens[priceIdx+1:], " "),
		},
	}
}

// ── Regla 7: saludo o menú ───────────────────────────────────────────────────

var greetingKeywords = []string{
	"hi", "hello", "hey", "good morning", "good afternoon", "good evening", "namaste",
}

var menuKeywords = []string{
	"menu", "food", "items", "available", "what do you have", "options",
}

func (r *Resolver) greetingMenuRule(req *request) (*ParsedIntent, error) {
	for _, kw := range greetingKeywords {
		if containsKeyword(req.msg, kw) {
			return &ParsedIntent{Intent: IntentShowMenu, Data: map[string]any{}}, nil
		}
	}
	for _, kw := range menuKeywords {
		if containsKeyword(req.msg, kw) {
			return &ParsedIntent{Intent: IntentShowMenu, Data: map[string]any{}}, nil
		}
	}
	return nil, nil
}

// ── Regla 8: búsqueda ────────────────────────────────────────────────────────

var searchRe = regexp.MustCompile(`^(?:search|find|show me|do you have)\s+(.+?)\??$`)

func (r *Resolver) searchRule(req *request) (*ParsedIntent, error) {
	if m := searchRe.FindStringSubmatch(req.msg); m != nil {
		return &ParsedIntent{
			Intent: IntentSearchMenu,
			Data:   map[string]any{"term": strings.TrimSpace(m[1])},
		}, nil
	}
	return nil, nil
}

// ── Regla 9: fallback ────────────────────────────────────────────────────────

func (r *Resolver) fallbackRule(req *request) (*ParsedIntent, error) {
	// El mensaje original viaja en data para generar sugerencias aguas abajo.
	return &ParsedIntent{Intent: IntentUnknown, Data: map[string]any{"message": req.raw}}, nil
}
