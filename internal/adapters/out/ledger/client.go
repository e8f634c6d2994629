// Package ledger implements the escrow ledger port against the HTTP gateway
// that fronts the ledger network. The gateway exposes two primitives, contract
// deployment and contract function execution; this client maps the workflow's
// typed operations onto them and classifies failures into definitive
// rejections and unknown-outcome timeouts.
package ledger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"logistics/internal/core/domain/model/contract"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/ports"
	"logistics/internal/pkg/errs"
)

const defaultTimeout = 30 * time.Second

// Gas limits per contract call. Pickup confirmation only flips a flag on the
// contract, so it runs with half the budget of the fund-moving calls.
const (
	defaultGas = 100_000
	pickupGas  = 50_000
)

// Client is an EscrowLedgerClient backed by the ledger gateway's HTTP API.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a gateway client for the given base URL.
// A zero timeout falls back to the default of 30 seconds.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

type deployRequest struct {
	StoreOwner string `json:"storeOwner"`
	Amount     int64  `json:"amount"`
	Fee        int64  `json:"fee"`
	Gas        int64  `json:"gas"`
}

type deployResponse struct {
	ContractID string `json:"contractId"`
}

type executeRequest struct {
	Function      string   `json:"function"`
	Params        []string `json:"params,omitempty"`
	Gas           int64    `json:"gas"`
	PayableAmount int64    `json:"payableAmount,omitempty"`
}

type executeResponse struct {
	TransactionID string `json:"transactionId"`
	Status        string `json:"status"`
}

// DeployEscrow creates a new escrow contract owned by the store.
func (c *Client) DeployEscrow(
	ctx context.Context, storeID kernel.UUID, amount, fee kernel.Money,
) (contract.ID, error) {
	request := deployRequest{
		StoreOwner: storeID.String(),
		Amount:     amount.Amount(),
		Fee:        fee.Amount(),
		Gas:        defaultGas,
	}

	var response deployResponse
	if err := c.post(ctx, "/contracts", "deployContract", request, &response); err != nil {
		return contract.ID{}, err
	}

	return contract.NewID(response.ContractID)
}

// FundEscrow transfers the escrow amount from the customer into the contract.
func (c *Client) FundEscrow(
	ctx context.Context, contractID contract.ID, amount kernel.Money,
) (ports.Receipt, error) {
	return c.execute(ctx, contractID, executeRequest{
		Function:      contract.FunctionFund.String(),
		Gas:           defaultGas,
		PayableAmount: amount.Amount(),
	})
}

// AcceptDelivery records the agent's commitment on the contract.
func (c *Client) AcceptDelivery(
	ctx context.Context, contractID contract.ID, agentID kernel.UUID, fee kernel.Money,
) (ports.Receipt, error) {
	return c.execute(ctx, contractID, executeRequest{
		Function:      contract.FunctionAcceptDelivery.String(),
		Params:        []string{agentID.String()},
		Gas:           defaultGas,
		PayableAmount: fee.Amount(),
	})
}

// ConfirmPickup records the goods collection on the contract.
func (c *Client) ConfirmPickup(ctx context.Context, contractID contract.ID) (ports.Receipt, error) {
	return c.execute(ctx, contractID, executeRequest{
		Function: contract.FunctionConfirmPickup.String(),
		Gas:      pickupGas,
	})
}

// ConfirmDelivery releases the escrowed funds to the store and the agent.
func (c *Client) ConfirmDelivery(
	ctx context.Context, contractID contract.ID, customerID, storeID, agentID kernel.UUID,
) (ports.Receipt, error) {
	return c.execute(ctx, contractID, executeRequest{
		Function: contract.FunctionConfirmDelivery.String(),
		Params:   []string{customerID.String(), storeID.String(), agentID.String()},
		Gas:      defaultGas,
	})
}

// Refund returns the escrowed funds to the customer.
func (c *Client) Refund(ctx context.Context, contractID contract.ID) (ports.Receipt, error) {
	return c.execute(ctx, contractID, executeRequest{
		Function: contract.FunctionRefund.String(),
		Gas:      defaultGas,
	})
}

func (c *Client) execute(
	ctx context.Context, contractID contract.ID, request executeRequest,
) (ports.Receipt, error) {
	if err := contractID.Validate(); err != nil {
		return ports.Receipt{}, err
	}

	path := fmt.Sprintf("/contracts/%s/calls", contractID.String())

	var response executeResponse
	if err := c.post(ctx, path, request.Function, request, &response); err != nil {
		return ports.Receipt{}, err
	}

	return ports.Receipt{
		ContractID:    contractID,
		TransactionID: response.TransactionID,
		Status:        response.Status,
	}, nil
}

// post sends a JSON request and decodes the JSON response. Timeouts and
// context expirations become LedgerTimeoutError because the call may have
// landed on the ledger; every other failure is a definitive LedgerFailureError.
func (c *Client) post(ctx context.Context, path, function string, request, response any) error {
	body, err := json.Marshal(request)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		if isTimeout(err) {
			return errs.NewLedgerTimeoutError(function, err)
		}
		return errs.NewLedgerFailureError(function, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return errs.NewLedgerFailureError(function,
			fmt.Errorf("gateway returned %d: %s", resp.StatusCode, payload))
	}

	return json.NewDecoder(resp.Body).Decode(response)
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return true
	}

	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
