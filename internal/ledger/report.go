package ledger

import (
	"bytes"
	"html/template"
	"time"

	"finance-tracker/internal/models"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titleCaser = cases.Title(language.English)

type reportRow struct {
	Date   string
	Text   string
	Type   string
	Amount string
	Income bool
}

type reportData struct {
	UserName        string
	GeneratedDate   string
	GeneratedTime   string
	Rows            []reportRow
	TotalIncome     string
	TotalExpense    string
	Balance         string
	BalanceNegative bool
}

// GenerateReport renders a self-contained printable document: every
// transaction newest first, plus the same three aggregate figures the list
// view shows. Export only; there is no computation here beyond the shared
// aggregates. The clock is a parameter so the generated-on stamp is
// testable.
func (f *Formatter) GenerateReport(transactions []models.Transaction, userName string, now time.Time) (string, error) {
	agg := ComputeAggregates(transactions)
	sorted := SortByDateDesc(transactions)

	rows := make([]reportRow, 0, len(sorted))
	for _, tx := range sorted {
		rows = append(rows, reportRow{
			Date:   f.Date(tx.Date),
			Text:   tx.Text,
			Type:   titleCaser.String(string(tx.Type)),
			Amount: f.SignedMoney(tx.Amount, tx.Type),
			Income: tx.Type == models.Income,
		})
	}

	data := reportData{
		UserName:        userName,
		GeneratedDate:   now.Format(displayDateLayout),
		GeneratedTime:   now.Format("3:04:05 PM"),
		Rows:            rows,
		TotalIncome:     f.Money(agg.TotalIncome),
		TotalExpense:    f.Money(agg.TotalExpense),
		Balance:         f.Money(agg.Balance),
		BalanceNegative: agg.Balance < 0,
	}

	var buf bytes.Buffer
	if err := reportTmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

var reportTmpl = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html>
<head>
    <title>Transaction Report</title>
    <style>
        body {
            font-family: Arial, sans-serif;
            margin: 40px;
            color: #333;
        }
        @media print {
            .no-print {
                display: none;
            }
        }
        h1 {
            color: #3a86ff;
            margin-bottom: 10px;
        }
        .header {
            display: flex;
            justify-content: space-between;
            margin-bottom: 30px;
            border-bottom: 1px solid #ddd;
            padding-bottom: 10px;
        }
        .meta-info {
            margin-bottom: 20px;
            font-size: 0.9rem;
            color: #666;
        }
        table {
            width: 100%;
            border-collapse: collapse;
            margin-bottom: 30px;
        }
        th, td {
            padding: 12px;
            text-align: left;
            border-bottom: 1px solid #ddd;
        }
        th {
            background-color: #f2f2f2;
            font-weight: bold;
        }
        .income {
            color: #2ecc71;
        }
        .expense {
            color: #e74c3c;
        }
        .footer {
            margin-top: 30px;
            padding-top: 20px;
            border-top: 1px solid #ddd;
        }
        .summary {
            display: flex;
            justify-content: space-between;
            margin-bottom: 20px;
        }
        .summary-item {
            padding: 15px;
            border-radius: 5px;
            text-align: center;
            flex: 1;
            margin: 0 10px;
        }
        .print-btn {
            background: #3a86ff;
            color: white;
            border: none;
            padding: 10px 20px;
            border-radius: 5px;
            cursor: pointer;
            font-size: 1rem;
            margin: 20px 0;
        }
    </style>
</head>
<body>
    <div class="print-container">
        <div class="header">
            <h1>Transaction Report</h1>
            <button class="print-btn no-print" onclick="window.print()">Print</button>
        </div>

        <div class="meta-info">
            <p><strong>User:</strong> {{.UserName}}</p>
            <p><strong>Generated on:</strong> {{.GeneratedDate}} at {{.GeneratedTime}}</p>
        </div>

        <table>
            <thead>
                <tr>
                    <th>Date</th>
                    <th>Description</th>
                    <th>Type</th>
                    <th>Amount</th>
                </tr>
            </thead>
            <tbody>
{{- range .Rows}}
                <tr>
                    <td>{{.Date}}</td>
                    <td>{{.Text}}</td>
                    <td>{{.Type}}</td>
                    <td class="{{if .Income}}income{{else}}expense{{end}}">{{.Amount}}</td>
                </tr>
{{- end}}
            </tbody>
        </table>

        <div class="footer">
            <h3>Summary</h3>
            <div class="summary">
                <div class="summary-item" style="background-color: rgba(46, 204, 113, 0.1); border: 1px solid #2ecc71;">
                    <h4>Total Income</h4>
                    <p class="income">{{.TotalIncome}}</p>
                </div>
                <div class="summary-item" style="background-color: rgba(231, 76, 60, 0.1); border: 1px solid #e74c3c;">
                    <h4>Total Expenses</h4>
                    <p class="expense">{{.TotalExpense}}</p>
                </div>
                <div class="summary-item" style="background-color: rgba(58, 134, 255, 0.1); border: 1px solid #3a86ff;">
                    <h4>Balance</h4>
                    <p class="{{if .BalanceNegative}}expense{{else}}income{{end}}">{{.Balance}}</p>
                </div>
            </div>
        </div>
    </div>

    <div class="no-print" style="text-align: center; margin-top: 40px;">
        <p>Tip: Use your browser's print function to save this report as a PDF.</p>
    </div>
</body>
</html>
`))
