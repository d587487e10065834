package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// --- SanitizeStruct tests ---

func TestSanitizeStruct_TrimsWhitespace(t *testing.T) {
	req := PurchaseRequest{
		TaskID:      "  task-1  ",
		ProductID:   " sku-9 ",
		ProductName: " Coffee beans ",
		Currency:    " USDC ",
	}
	SanitizeStruct(&req)

	assert.Equal(t, "task-1", req.TaskID)
	assert.Equal(t, "sku-9", req.ProductID)
	assert.Equal(t, "Coffee beans", req.ProductName)
	assert.Equal(t, "USDC", req.Currency)
}

func TestSanitizeStruct_EscapesHTML(t *testing.T) {
	req := PurchaseRequest{ProductName: "mug <script>alert('x')</script>"}
	SanitizeStruct(&req)

	assert.Contains(t, req.ProductName, "&lt;script&gt;")
	assert.NotContains(t, req.ProductName, "<script>")
}

func TestSanitizeStruct_SkipsOptedOutFields(t *testing.T) {
	req := FundWalletRequest{
		Amount:   " 1.5 ",
		Password: "  p<ss>word  ",
	}
	SanitizeStruct(&req)

	assert.Equal(t, "1.5", req.Amount)
	assert.Equal(t, "  p<ss>word  ", req.Password)
}

func TestSanitizeStruct_HandlesPointerString(t *testing.T) {
	type withPointer struct {
		Note *string
	}
	note := "  <b>hi</b>  "
	req := withPointer{Note: &note}
	SanitizeStruct(&req)

	assert.Equal(t, "&lt;b&gt;hi&lt;/b&gt;", *req.Note)
}

func TestSanitizeStruct_NilPointerIsNoOp(t *testing.T) {
	type withPointer struct {
		Note *string
	}
	req := withPointer{}
	SanitizeStruct(&req)
	assert.Nil(t, req.Note)
}

func TestSanitizeStruct_NonPointerIsNoOp(t *testing.T) {
	s := "hello"
	SanitizeStruct(s) // should not panic
}

// --- Custom Validator tests ---

func TestSafeID_Valid(t *testing.T) {
	cases := []string{
		"task-001",
		"TASK_002",
		"a.b.c",
		"simple123",
	}
	for _, tc := range cases {
		assert.True(t, safeStringRe.MatchString(tc), "expected valid: %s", tc)
	}
}

func TestSafeID_Invalid(t *testing.T) {
	cases := []string{
		"task 001",
		"task<001>",
		"task;DROP",
		"",
		"task\n001",
	}
	for _, tc := range cases {
		assert.False(t, safeStringRe.MatchString(tc), "expected invalid: %s", tc)
	}
}

func TestSolanaAddress(t *testing.T) {
	assert.True(t, isSolanaAddress("11111111111111111111111111111111"))
	assert.True(t, isSolanaAddress("EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v"))
	assert.False(t, isSolanaAddress(""))
	assert.False(t, isSolanaAddress("not-an-address"))
	assert.False(t, isSolanaAddress("0x52908400098527886E0F7030069857D2E4169EE7"))
}

func TestDecimalAmount(t *testing.T) {
	for _, ok := range []string{"1", "0.000000001", "12.5", " 3 "} {
		assert.True(t, isPositiveDecimal(ok), "expected valid: %q", ok)
	}
	for _, bad := range []string{"", "0", "-1", "abc", "1e"} {
		assert.False(t, isPositiveDecimal(bad), "expected invalid: %q", bad)
	}
}
