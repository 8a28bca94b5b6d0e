package metrics

import (
	"fmt"
	"io"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
)

// Report summarizes multiclass predictions. ConfusionMatrix is indexed
// [actual][predicted]; percentages are in [0, 100].
type Report struct {
	Accuracy        float64
	ConfusionMatrix [][]int
	ClassPrecision  []float64
	ClassRecall     []float64
	F1Scores        []float64

	// Support is the number of ground truth samples of each class.
	Support []int

	// ClassNames label the table rows; class indices are used when empty.
	ClassNames []string
}

func NewReport(prediction, groundTruth []int, numClasses int) (Report, error) {
	if len(prediction) != len(groundTruth) {
		return Report{}, fmt.Errorf("%d predictions, %d labels: %w", len(prediction), len(groundTruth), ErrLengthMismatch)
	}
	if numClasses < 0 {
		return Report{}, fmt.Errorf("%d classes: %w", numClasses, ErrClassRange)
	}

	confusionMatrix := make([][]int, numClasses)
	for i := range confusionMatrix {
		confusionMatrix[i] = make([]int, numClasses)
	}
	for i, actual := range groundTruth {
		predicted := prediction[i]
		if actual < 0 || actual >= numClasses || predicted < 0 || predicted >= numClasses {
			return Report{}, fmt.Errorf("sample %d: class outside [0, %d): %w", i, numClasses, ErrClassRange)
		}
		confusionMatrix[actual][predicted]++
	}

	return calculateMetrics(confusionMatrix, len(groundTruth)), nil
}

func calculateMetrics(confusionMatrix [][]int, total int) Report {
	numClasses := len(confusionMatrix)
	r := Report{
		ConfusionMatrix: confusionMatrix,
		ClassPrecision:  make([]float64, numClasses),
		ClassRecall:     make([]float64, numClasses),
		F1Scores:        make([]float64, numClasses),
		Support:         make([]int, numClasses),
	}

	correct := 0
	for i := range numClasses {
		truePositives := confusionMatrix[i][i]
		falsePositives := 0
		falseNegatives := 0

		for j := range numClasses {
			r.Support[i] += confusionMatrix[i][j]
			if i != j {
				falsePositives += confusionMatrix[j][i]
				falseNegatives += confusionMatrix[i][j]
			}
		}

		if truePositives+falsePositives > 0 {
			r.ClassPrecision[i] = float64(truePositives) / float64(truePositives+falsePositives) * 100
		}
		if truePositives+falseNegatives > 0 {
			r.ClassRecall[i] = float64(truePositives) / float64(truePositives+falseNegatives) * 100
		}
		if r.ClassPrecision[i]+r.ClassRecall[i] > 0 {
			r.F1Scores[i] = 2 * (r.ClassPrecision[i] * r.ClassRecall[i]) /
				(r.ClassPrecision[i] + r.ClassRecall[i])
		}

		correct += truePositives
	}

	if total > 0 {
		r.Accuracy = float64(correct) / float64(total) * 100
	}
	return r
}

func (r Report) className(i int) string {
	if i < len(r.ClassNames) {
		return r.ClassNames[i]
	}
	return strconv.Itoa(i)
}

// MacroF1 is the unweighted mean of the per-class F1 scores.
func (r Report) MacroF1() float64 {
	if len(r.F1Scores) == 0 {
		return 0
	}
	sum := 0.0
	for _, f1 := range r.F1Scores {
		sum += f1
	}
	return sum / float64(len(r.F1Scores))
}

func (r Report) Write(w io.Writer) error {
	numClasses := len(r.ConfusionMatrix)

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetTitle("Confusion Matrix")
	header := table.Row{""}
	for i := range numClasses {
		header = append(header, r.className(i))
	}
	t.AppendHeader(header)
	for i, counts := range r.ConfusionMatrix {
		row := table.Row{r.className(i)}
		for _, count := range counts {
			if r.Support[i] == 0 {
				row = append(row, "")
			} else {
				row = append(row, fmt.Sprintf("%6.2f%%", float64(count)/float64(r.Support[i])*100))
			}
		}
		t.AppendRow(row)
	}
	t.AppendFooter(table.Row{"ACCURACY", fmt.Sprintf("%0.02f%%", r.Accuracy)})
	t.Render()

	t = table.NewWriter()
	t.SetOutputMirror(w)
	t.SetTitle("Class Metrics")
	t.AppendHeader(table.Row{"CLASS", "PRECISION", "RECALL", "F1 SCORE", "SAMPLES"})
	precision, recall, samples := 0.0, 0.0, 0
	for i := range numClasses {
		t.AppendRow(table.Row{
			r.className(i),
			fmt.Sprintf("%6.2f%%", r.ClassPrecision[i]),
			fmt.Sprintf("%6.2f%%", r.ClassRecall[i]),
			fmt.Sprintf("%6.2f%%", r.F1Scores[i]),
			fmt.Sprintf("%d", r.Support[i]),
		})
		precision += r.ClassPrecision[i]
		recall += r.ClassRecall[i]
		samples += r.Support[i]
	}
	if numClasses > 0 {
		t.AppendSeparator()
		t.AppendRow(table.Row{
			"",
			fmt.Sprintf("%6.2f%%", precision/float64(numClasses)),
			fmt.Sprintf("%6.2f%%", recall/float64(numClasses)),
			fmt.Sprintf("%6.2f%%", r.MacroF1()),
			fmt.Sprintf("%d", samples),
		})
	}
	t.Render()

	return nil
}

func (m BinaryMetrics) Write(w io.Writer, title string) error {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetTitle(title)
	t.AppendHeader(table.Row{"", "PREDICTED TRUE", "PREDICTED FALSE"})
	t.AppendRows([]table.Row{
		{"ACTUAL TRUE", m.TruePositives, m.FalseNegatives},
		{"ACTUAL FALSE", m.FalsePositives, m.TrueNegatives},
	})
	t.AppendSeparator()
	t.AppendRows([]table.Row{
		{"PRECISION", fmt.Sprintf("%0.4f", m.Precision)},
		{"RECALL", fmt.Sprintf("%0.4f", m.Recall)},
		{"F1 SCORE", fmt.Sprintf("%0.4f", m.F1)},
		{"ACCURACY", fmt.Sprintf("%0.4f", m.Accuracy)},
	})
	t.Render()
	return nil
}
