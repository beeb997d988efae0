package importer

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/cchawn/toolbox/internal/model"
)

// WealthsimpleCardParser parses Wealthsimple credit card exports:
// transaction_date,post_date,type,details,amount,currency.
type WealthsimpleCardParser struct{}

var wsCardCreditTypes = []string{"refund", "credit", "cashback", "reward"}

// Format returns the parser name.
func (p *WealthsimpleCardParser) Format() model.Format { return model.FormatWealthsimpleCard }

// Parse reads a Wealthsimple card CSV. Card payments are dropped; refunds and
// rewards are credits, everything else is a charge.
func (p *WealthsimpleCardParser) Parse(r io.Reader, env *Env) (Result, error) {
	recs, err := readRecords(r)
	if err != nil {
		return Result{}, fmt.Errorf("reading Wealthsimple card CSV: %w", err)
	}
	if len(recs.rows) == 0 {
		return Result{Skipped: recs.malformed}, nil
	}

	idx := headerIndex(recs.rows[0])
	colDate, okDate := column(idx, "transaction_date", "date")
	colType, _ := column(idx, "type")
	colDesc, okDesc := column(idx, "details", "description")
	colAmount, okAmount := column(idx, "amount")
	if !okDate || !okDesc || !okAmount {
		return Result{}, fmt.Errorf("wealthsimple card header missing columns: %v", recs.rows[0])
	}

	res := Result{Skipped: recs.malformed}
	for _, rec := range recs.rows[1:] {
		typ := strings.ToLower(field(rec, colType))
		desc := field(rec, colDesc)
		if typ == "payment" || desc == "" {
			res.Skipped++
			continue
		}
		amount, err := parseAmount(field(rec, colAmount))
		if err != nil {
			res.Skipped++
			continue
		}
		if containsFold(typ, wsCardCreditTypes) {
			amount = credit(amount)
		} else {
			amount = debit(amount)
		}
		res.Transactions = append(res.Transactions, env.newTransaction(field(rec, colDate), desc, amount))
	}
	return res, nil
}

// WealthsimpleCashParser parses Wealthsimple cash/investment account
// exports: date,transaction,description,amount,balance,currency. Amounts are
// already signed.
type WealthsimpleCashParser struct{}

var wsTransferMarkers = []string{"TRFIN", "TRFOUT", "TRANSFER_IN", "TRANSFER_OUT"}

// Outbound transfer types; only these are checked against bill payees.
var wsOutboundTypes = []string{"AFT_OUT", "EFT"}

const (
	wsTypeInterest  = "INT"
	wsTypeDepositIn = "AFT_IN"
)

// Format returns the parser name.
func (p *WealthsimpleCashParser) Format() model.Format { return model.FormatWealthsimpleCash }

// Parse reads a Wealthsimple cash CSV. Interest, internal transfers and bill
// payments are dropped; payroll deposits go to the income ledger.
func (p *WealthsimpleCashParser) Parse(r io.Reader, env *Env) (Result, error) {
	recs, err := readRecords(r)
	if err != nil {
		return Result{}, fmt.Errorf("reading Wealthsimple cash CSV: %w", err)
	}
	if len(recs.rows) == 0 {
		return Result{Skipped: recs.malformed}, nil
	}

	idx := headerIndex(recs.rows[0])
	colDate, okDate := column(idx, "date")
	colType, okType := column(idx, "transaction")
	colDesc, okDesc := column(idx, "description")
	colAmount, okAmount := column(idx, "amount")
	if !okDate || !okType || !okDesc || !okAmount {
		return Result{}, fmt.Errorf("wealthsimple cash header missing columns: %v", recs.rows[0])
	}

	res := Result{Skipped: recs.malformed}
	for _, rec := range recs.rows[1:] {
		typ := strings.ToUpper(field(rec, colType))
		desc := field(rec, colDesc)
		rawDate := field(rec, colDate)

		amount, err := parseAmount(field(rec, colAmount))
		if err != nil || desc == "" {
			res.Skipped++
			continue
		}

		switch {
		case typ == wsTypeInterest || strings.Contains(typ, "INTEREST"):
			res.Skipped++
		case containsFold(typ, wsTransferMarkers):
			res.Skipped++
		case slices.Contains(wsOutboundTypes, typ) && amount.IsNegative() && containsFold(desc, env.BillPayees):
			res.Skipped++
		case typ == wsTypeDepositIn && containsFold(desc, env.PayrollMarkers):
			env.addIncome(rawDate, amount)
			res.IncomeRows++
		default:
			res.Transactions = append(res.Transactions, env.newTransaction(rawDate, desc, amount))
		}
	}
	return res, nil
}
