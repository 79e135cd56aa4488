package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"lavka-stub/internal/logger"
	"lavka-stub/internal/schema"
)

// The simulator plays an integration partner: it submits orders, resends
// some created_order_ids on purpose and reports how the stub answered.
func main() {
	_ = godotenv.Load()

	baseURL := flag.String("url", envOr("SIMULATE_URL", "http://localhost:8000"), "stub base url")
	orders := flag.Int("orders", 20, "number of submissions")
	repeatEvery := flag.Int("repeat-every", 4, "resend the previous created_order_id every N submissions (0 disables)")
	parallel := flag.Int("parallel", 1, "concurrent copies of every submission")
	flag.Parse()

	log := logger.New("info", false)
	client := &http.Client{Timeout: 10 * time.Second}
	ctx := context.Background()

	var ok, dup, bad, failed int
	fmt.Printf("--- STARTING SIMULATION (%d ORDERS) ---\n", *orders)

	var last string
	for i := 0; i < *orders; i++ {
		id := uuid.NewString()
		if *repeatEvery > 0 && i > 0 && i%*repeatEvery == 0 {
			id = last
		}
		last = id

		results := make([]outcome, *parallel)
		g, gctx := errgroup.WithContext(ctx)
		for p := range results {
			g.Go(func() error {
				results[p] = submit(gctx, client, *baseURL, sampleOrder(id, i))
				return nil
			})
		}
		_ = g.Wait()

		for _, r := range results {
			fmt.Printf("[%d] created_order_id=%s -> %s\n", i+1, id, r)
			switch {
			case r.err != nil:
				failed++
			case r.status == http.StatusOK:
				ok++
			case r.code == "grocery_order_id_exists":
				dup++
			default:
				bad++
			}
		}
		fmt.Println("---------------------------------------------------")
	}

	log.WithFields(logrus.Fields{
		"accepted":   ok,
		"duplicates": dup,
		"rejected":   bad,
		"failed":     failed,
	}).Info("simulation finished")
	if failed > 0 {
		os.Exit(1)
	}
}

type outcome struct {
	status  int
	orderID string
	code    string
	message string
	err     error
}

func (o outcome) String() string {
	switch {
	case o.err != nil:
		return "ERROR: " + o.err.Error()
	case o.status == http.StatusOK:
		return "OK order_id=" + o.orderID
	default:
		return fmt.Sprintf("%d %s: %s", o.status, o.code, o.message)
	}
}

func submit(ctx context.Context, client *http.Client, baseURL string, order schema.RequestOrder) outcome {
	body, err := json.Marshal(order)
	if err != nil {
		return outcome{err: err}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		baseURL+"/lavka/v1/integration-entry/v1/order/submit", bytes.NewReader(body))
	if err != nil {
		return outcome{err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return outcome{err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return outcome{err: err}
	}

	out := outcome{status: resp.StatusCode}
	if resp.StatusCode == http.StatusOK {
		var ok schema.OrderResponse
		if err := json.Unmarshal(raw, &ok); err != nil {
			return outcome{err: fmt.Errorf("decode response: %w", err)}
		}
		out.orderID = ok.OrderID
		return out
	}
	var e schema.ErrorResponse
	if err := json.Unmarshal(raw, &e); err != nil {
		out.message = string(raw)
		return out
	}
	out.code, out.message = e.Code, e.Message
	return out
}

func sampleOrder(createdOrderID string, i int) schema.RequestOrder {
	qty := schema.DecimalString(fmt.Sprintf("%d", i%3+1))
	return schema.RequestOrder{
		UserID:    fmt.Sprintf("user-%d", i%5),
		UserPhone: "+966500000000",
		Cart: &schema.Cart{Items: []schema.CartItem{
			{ID: "sku-1", Quantity: qty, FullPrice: "12.50"},
			{ID: "sku-2", Quantity: "1", FullPrice: "3.99"},
		}},
		PaymentType: schema.PaymentTypeCash,
		Location: &schema.Location{
			Position: schema.NewPoint(24.7136, 46.6753),
			PlaceID:  "riyadh-1",
		},
		CreatedOrderID: &createdOrderID,
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
