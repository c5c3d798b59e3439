// pkg/synonyms/default.go
package synonyms

// defaultColumns lists the voucher table columns in resolution order. Each
// column is its own phrase.
var defaultColumns = []string{
	"auto_id",
	"stagename",
	"submittedby",
	"submittedbyrole",
	"submitteddatetime",
	"program",
	"donor",
	"expensemainhead",
	"expensesubhead",
	"billdate",
	"invoiceclaimnumber",
	"invoiceclaimamount",
	"accept_reject_cancel",
	"remarks",
	"summary",
	"expensetype",
	"vendor",
	"dispositiontype",
	"assignto",
	"audit_started_on",
	"audit_created_by",
	"sample_to",
	"audit_created_on",
	"audit_evaluation_duration",
	"deletedstatus",
	"deleted_by",
	"deleted_on",
	"level1_submittedby",
	"level1_submittedrole",
	"initiator",
	"program_officer1",
	"finance_check2",
	"managing_trustee",
	"executive_director",
	"budget_owner",
	"program_officer2",
	"entry1",
	"entry2",
	"paymententryapproval",
	"uploadpaymentinbank",
	"isescalationcyclecomplete",
	"escalatedlevel",
	"isescalationdone",
	"escalationdispositionanswerid",
	"escalationdisposition",
	"dispositionby",
	"dispositionbyrole",
	"stagetransactionid",
	"datatableid",
	"employee",
	"newvendorname",
	"ifsc",
	"Next_Approver",
	"Role_status",
	"approval_pending_status",
	"status",
	"invoiceclaimamount_Lakhs",
	"LastDate",
	"refresh_date",
	"decision",
	"from_Role_name",
	"to_Role_name",
	"to_name",
	"Voucher_Aging",
	"pending_days",
	"Voucher_Aging_bucket",
	"Pending_days_bucket",
}

// Default returns the built-in table. Callers get a fresh copy.
func Default() *Table {
	entries := make([]Entry, len(defaultColumns))
	for i, c := range defaultColumns {
		entries[i] = Entry{Phrase: c, Column: c}
	}
	return &Table{Version: "1", Entries: entries}
}
