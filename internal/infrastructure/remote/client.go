package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Inventario-ledger/internal/application/ledger"
	"github.com/jhoicas/Inventario-ledger/internal/domain"
	"github.com/jhoicas/Inventario-ledger/internal/domain/entity"
)

// Ensure Client implements ledger.Mirrorer.
var _ ledger.Mirrorer = (*Client)(nil)

// Client habla con el servicio remoto autoritativo de productos. Todo fallo de
// transporte, status o decodificación se reporta como domain.ErrRemoteUnavailable
// para que el llamador degrade a datos locales sin romperse. El timeout del
// http.Client acota cada llamada: un timeout se trata igual que cualquier otro
// fallo de transporte.
type Client struct {
	baseURL string
	httpc   *http.Client
}

// NewClient construye el cliente. baseURL sin slash final, ej. http://10.0.2.2:3000.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Client{
		baseURL: baseURL,
		httpc:   &http.Client{Timeout: timeout},
	}
}

// FetchProducts obtiene el listado remoto: GET /productos.
func (c *Client) FetchProducts(ctx context.Context) ([]*entity.Product, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/productos", nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrRemoteUnavailable, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrRemoteUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: GET /productos status %d", domain.ErrRemoteUnavailable, resp.StatusCode)
	}

	var products []*entity.Product
	if err := json.NewDecoder(resp.Body).Decode(&products); err != nil {
		return nil, fmt.Errorf("%w: decodificar listado: %v", domain.ErrRemoteUnavailable, err)
	}
	return products, nil
}

// mirrorProductBody cuerpo del POST /productos según el contrato remoto.
type mirrorProductBody struct {
	Name     string          `json:"nombre"`
	Price    decimal.Decimal `json:"precio"`
	MinStock int64           `json:"minStock"`
}

// MirrorProductCreated replica una creación local: POST /productos.
// Se invoca después de que el insert local ya es definitivo; cualquier status
// no exitoso cuenta como fallo de espejo.
func (c *Client) MirrorProductCreated(ctx context.Context, name string, price decimal.Decimal, minStock int64) error {
	body, err := json.Marshal(mirrorProductBody{Name: name, Price: price, MinStock: minStock})
	if err != nil {
		return fmt.Errorf("%w: serializar producto: %v", domain.ErrRemoteUnavailable, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/productos", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrRemoteUnavailable, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrRemoteUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: POST /productos status %d", domain.ErrRemoteUnavailable, resp.StatusCode)
	}
	return nil
}
