package commission

import "commission-comparer/core/reconcile"

// Document kinds.
const (
	KindReferrer = "referrer"
	KindBroker   = "broker"
	KindBranch   = "branch"
	KindSummary  = "executive_summary"
)

// Field name constants shared by schemas and layouts.
const (
	FieldCommissionType  = "commission_type"
	FieldClient          = "client"
	FieldReferrer        = "referrer"
	FieldAmountPaid      = "amount_paid"
	FieldGSTPaid         = "gst_paid"
	FieldTotal           = "total"
	FieldReferenceID     = "reference_id"
	FieldBank            = "bank"
	FieldLoanBalance     = "loan_balance"
	FieldTotalAmountPaid = "total_amount_paid"
	FieldComments        = "comments"
	FieldBroker          = "broker"
	FieldLender          = "lender"
	FieldRefNo           = "ref_no"
	FieldSettledLoan     = "settled_loan"
	FieldSettlementDate  = "settlement_date"
	FieldCommission      = "commission"
	FieldGST             = "gst"
	FieldCommissionSplit = "commission_split"
	FieldFeesGST         = "fees_gst"
	FieldRemitted        = "remitted"
	FieldPaidToBroker    = "paid_to_broker"
	FieldPaidToReferrer  = "paid_to_referrer"
	FieldRetained        = "retained"
	FieldID              = "id"

	HeaderFrom       = "from"
	HeaderFromABN    = "from_abn"
	HeaderTo         = "to"
	HeaderToABN      = "to_abn"
	HeaderABN        = "abn"
	HeaderBSB        = "bsb"
	HeaderAccount    = "account"
	HeaderFinalTotal = "final_total"
)

// ReferrerSchema describes referrer RCTI line items (HTML statements).
func ReferrerSchema() *reconcile.Schema {
	return &reconcile.Schema{
		Name: KindReferrer,
		Fields: []reconcile.Field{
			reconcile.IdentityField(FieldCommissionType),
			reconcile.IdentityField(FieldClient),
			reconcile.IdentityField(FieldReferrer),
			reconcile.ValueField(FieldAmountPaid),
			reconcile.ValueField(FieldGSTPaid),
			reconcile.ValueField(FieldTotal),
		},
		Header: []reconcile.Field{
			reconcile.TextField(HeaderFrom),
			reconcile.TextField(HeaderFromABN),
			reconcile.TextField(HeaderTo),
			reconcile.TextField(HeaderToABN),
			reconcile.TextField(HeaderBSB),
			reconcile.TextField(HeaderAccount),
			reconcile.ValueField(HeaderFinalTotal),
		},
	}
}

// BrokerSchema describes broker RCTI line items (xlsx statements).
func BrokerSchema() *reconcile.Schema {
	return &reconcile.Schema{
		Name: KindBroker,
		Fields: []reconcile.Field{
			reconcile.IdentityField(FieldCommissionType),
			reconcile.IdentityField(FieldClient),
			reconcile.IdentityField(FieldReferenceID),
			reconcile.TextField(FieldBank),
			reconcile.ValueField(FieldLoanBalance),
			reconcile.ValueField(FieldAmountPaid),
			reconcile.ValueField(FieldGSTPaid),
			reconcile.ValueField(FieldTotalAmountPaid),
			reconcile.TextField(FieldComments),
		},
		Header: []reconcile.Field{
			reconcile.TextField(HeaderFrom),
			reconcile.TextField(HeaderTo),
			reconcile.TextField(HeaderABN),
			reconcile.TextField(HeaderBSB),
			reconcile.TextField(HeaderAccount),
		},
	}
}

// BranchSchema describes branch RCTI "Vbi Data" line items.
func BranchSchema() *reconcile.Schema {
	return &reconcile.Schema{
		Name: KindBranch,
		Fields: []reconcile.Field{
			reconcile.IdentityField(FieldBroker),
			reconcile.IdentityField(FieldLender),
			reconcile.IdentityField(FieldClient),
			reconcile.IdentityField(FieldRefNo),
			reconcile.TextField(FieldReferrer),
			reconcile.ValueField(FieldSettledLoan),
			reconcile.TextField(FieldSettlementDate),
			reconcile.ValueField(FieldCommission),
			reconcile.ValueField(FieldGST),
			reconcile.ValueField(FieldCommissionSplit),
			reconcile.ValueField(FieldFeesGST),
			reconcile.ValueField(FieldRemitted),
			reconcile.ValueField(FieldPaidToBroker),
			reconcile.ValueField(FieldPaidToReferrer),
			reconcile.ValueField(FieldRetained),
		},
	}
}

// SummarySchema describes executive summary branch rows. Columns other than the
// ID are discovered per document.
func SummarySchema() *reconcile.Schema {
	return &reconcile.Schema{
		Name:   KindSummary,
		Fields: []reconcile.Field{reconcile.IdentityField(FieldID)},
		Open:   true,
	}
}

// Layout maps schema fields to spreadsheet column headers.
type Layout struct {
	// Sheet is the tab holding the rows. Empty means the first sheet.
	Sheet string

	// Columns maps field names to column header text.
	Columns map[string]string
}

// BrokerLayout returns the broker statement table layout.
func BrokerLayout() Layout {
	return Layout{
		Columns: map[string]string{
			FieldCommissionType:  "Commission Type",
			FieldClient:          "Client",
			FieldReferenceID:     "Commission Ref ID",
			FieldBank:            "Bank",
			FieldLoanBalance:     "Loan Balance",
			FieldAmountPaid:      "Amount Paid",
			FieldGSTPaid:         "GST Paid",
			FieldTotalAmountPaid: "Total Amount Paid",
			FieldComments:        "Comments",
		},
	}
}

// BranchLayout returns the branch statement "Vbi Data" layout.
func BranchLayout() Layout {
	return Layout{
		Sheet: "Vbi Data",
		Columns: map[string]string{
			FieldBroker:          "Broker",
			FieldLender:          "Lender",
			FieldClient:          "Client",
			FieldRefNo:           "Ref #",
			FieldReferrer:        "Referrer",
			FieldSettledLoan:     "Settled Loan",
			FieldSettlementDate:  "Settlement Date",
			FieldCommission:      "Commission",
			FieldGST:             "GST",
			FieldCommissionSplit: "Fee/Commission Split",
			FieldFeesGST:         "Fees GST",
			FieldRemitted:        "Remitted/Net",
			FieldPaidToBroker:    "Paid To Broker",
			FieldPaidToReferrer:  "Paid To Referrer",
			FieldRetained:        "Retained",
		},
	}
}

// SummaryLayout returns the executive summary layout. Only the ID column is
// fixed; every other column is carried under its header text.
func SummaryLayout() Layout {
	return Layout{
		Sheet: "Branch Summary Report",
		Columns: map[string]string{
			FieldID: "ID",
		},
	}
}
