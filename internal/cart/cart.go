package cart

import (
	"encoding/json"
	"sort"
	"strconv"

	"github.com/shopspring/decimal"
)

// セッションに入れるカート。商品IDごとに数量と追加時点の単価を持つ。
type Cart struct {
	lines map[int64]Line
}

type Line struct {
	Quantity  int64           `json:"quantity"`
	UnitPrice decimal.Decimal `json:"price"`
}

// 一覧表示用のビュー。Subtotal = Quantity × UnitPrice。
type LineView struct {
	ProductID int64           `json:"product_id"`
	Quantity  int64           `json:"quantity"`
	UnitPrice decimal.Decimal `json:"price"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

func New() *Cart {
	return &Cart{lines: map[int64]Line{}}
}

// Add はカートに商品を入れる。
// 既にある商品は数量を加算、replace=true なら上書き。
// 在庫チェックはここではしない（呼び出し側の責務）。
func (c *Cart) Add(productID int64, unitPrice decimal.Decimal, qty int64, replace bool) {
	line, ok := c.lines[productID]
	if !ok {
		c.lines[productID] = Line{Quantity: qty, UnitPrice: unitPrice}
		return
	}
	if replace {
		line.Quantity = qty
	} else {
		line.Quantity += qty
	}
	c.lines[productID] = line
}

// Remove は明細を消す。無ければ何もしない。
func (c *Cart) Remove(productID int64) {
	delete(c.lines, productID)
}

// Clear は全明細を消す（注文確定時に一度だけ呼ばれる）。
func (c *Cart) Clear() {
	c.lines = map[int64]Line{}
}

// Quantity は商品の現在数量。無ければ0。
func (c *Cart) Quantity(productID int64) int64 {
	return c.lines[productID].Quantity
}

func (c *Cart) Len() int {
	return len(c.lines)
}

// Lines は商品ID昇順の明細ビューを返す。
func (c *Cart) Lines() []LineView {
	ids := make([]int64, 0, len(c.lines))
	for id := range c.lines {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	views := make([]LineView, 0, len(ids))
	for _, id := range ids {
		line := c.lines[id]
		views = append(views, LineView{
			ProductID: id,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
			Subtotal:  line.UnitPrice.Mul(decimal.NewFromInt(line.Quantity)),
		})
	}
	return views
}

func (c *Cart) TotalQuantity() int64 {
	var total int64
	for _, line := range c.lines {
		total += line.Quantity
	}
	return total
}

func (c *Cart) TotalPrice() decimal.Decimal {
	total := decimal.Zero
	for _, line := range c.lines {
		total = total.Add(line.UnitPrice.Mul(decimal.NewFromInt(line.Quantity)))
	}
	return total
}

// Encode はセッション保存用のJSON文字列を作る。
// キーは商品IDの10進文字列。
func (c *Cart) Encode() (string, error) {
	raw := make(map[string]Line, len(c.lines))
	for id, line := range c.lines {
		raw[strconv.FormatInt(id, 10)] = line
	}
	b, err := json.Marshal(raw)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Decode はセッションのJSONからカートを復元する。
// 空文字列は空カートとして扱う。
func Decode(s string) (*Cart, error) {
	c := New()
	if s == "" {
		return c, nil
	}

	var raw map[string]Line
	if err := json.Unmarshal([]byte(s), &raw); err != nil {
		return nil, err
	}

	for key, line := range raw {
		id, err := strconv.ParseInt(key, 10, 64)
		if err != nil {
			return nil, err
		}
		c.lines[id] = line
	}
	return c, nil
}
