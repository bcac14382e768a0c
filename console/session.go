// Package console runs the interactive refinancing session: the menu, the
// prompts for each loan and the export of the accumulated records.
package console

import (
	"errors"
	"fmt"
	"io"
	"iter"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"loan-refinance/amortization"
	"loan-refinance/domain"
	"loan-refinance/export"
)

// LoanService creates records and exposes the ones already created.
type LoanService interface {
	CreateRecord(input domain.LoanInput) (domain.LoanRecord, error)
	Records() iter.Seq[domain.LoanRecord]
	HasRecords() bool
}

// Exporter writes records to a file and reads the file back.
type Exporter interface {
	Export(records iter.Seq[domain.LoanRecord]) (string, error)
	Preview(path string) (export.Preview, error)
}

type Session struct {
	prompter *Prompter
	out      io.Writer
	service  LoanService
	exporter Exporter
	logger   *zap.Logger
}

func NewSession(prompter *Prompter, out io.Writer, service LoanService, exporter Exporter, logger *zap.Logger) *Session {
	return &Session{
		prompter: prompter,
		out:      out,
		service:  service,
		exporter: exporter,
		logger:   logger.With(zap.String("session_id", uuid.NewString())),
	}
}

// Run shows the menu until the user quits or the input ends. Record and export
// failures are reported and the loop goes on.
func (s *Session) Run() error {
	s.logger.Info("session started")
	defer s.logger.Info("session finished")

	fmt.Fprintln(s.out, "=== Sistema de Cálculo de Empréstimos ===")

	for {
		fmt.Fprintln(s.out, "\nMenu:")
		fmt.Fprintln(s.out, "1. Adicionar novo empréstimo")
		fmt.Fprintln(s.out, "2. Gerar planilha Excel")
		fmt.Fprintln(s.out, "3. Sair")

		choice, err := s.prompter.ReadLine("Escolha uma opção: ")
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		switch strings.TrimSpace(choice) {
		case "1":
			if err := s.addLoan(); err != nil {
				if errors.Is(err, io.EOF) {
					return nil
				}
				return err
			}
		case "2":
			s.exportRecords()
		case "3":
			fmt.Fprintln(s.out, "Encerrando o programa. Até logo!")
			return nil
		default:
			fmt.Fprintln(s.out, "Opção inválida. Tente novamente.")
		}
	}
}

func (s *Session) addLoan() error {
	name, err := s.prompter.Ask("Nome do cliente: ", KindText)
	if err != nil {
		return err
	}
	principal, err := s.prompter.Ask("Saldo devedor (R$): ", KindPositiveDecimal)
	if err != nil {
		return err
	}
	term, err := s.prompter.Ask("Parcelas restantes: ", KindPositiveInteger)
	if err != nil {
		return err
	}
	payment, err := s.prompter.Ask("Valor da prestação atual (R$): ", KindPositiveDecimal)
	if err != nil {
		return err
	}
	rate, err := s.prompter.Ask("Nova taxa de juros mensal (%): ", KindPercent)
	if err != nil {
		return err
	}

	record, err := s.service.CreateRecord(domain.LoanInput{
		Name:           name.Text,
		Principal:      principal.Decimal,
		RemainingTerm:  term.Integer,
		CurrentPayment: payment.Decimal,
		ProposedRate:   rate.Decimal,
	})
	if err != nil {
		fmt.Fprintf(s.out, "Empréstimo não cadastrado: %v\n", err)
		return nil
	}

	fmt.Fprintf(s.out, "Taxa de juros atual: %s%% ao mês\n",
		amortization.RoundPercent(decimal.NewFromFloat(record.InferredCurrentRate())).StringFixed(2))
	fmt.Fprintf(s.out, "Nova prestação: R$ %s\n",
		amortization.RoundMoney(record.ProposedPayment()).StringFixed(2))
	return nil
}

func (s *Session) exportRecords() {
	if !s.service.HasRecords() {
		fmt.Fprintln(s.out, "Nenhum empréstimo cadastrado ainda.")
		return
	}

	path, err := s.exporter.Export(s.service.Records())
	if err != nil {
		s.logger.Error("export failed", zap.Error(err))
		fmt.Fprintf(s.out, "Erro ao gerar a planilha: %v\n", err)
		return
	}
	fmt.Fprintf(s.out, "\n Arquivo gerado com sucesso em:\n%s\n", path)

	preview, err := s.exporter.Preview(path)
	if err != nil {
		s.logger.Warn("preview failed", zap.String("path", path), zap.Error(err))
		fmt.Fprintf(s.out, "Não foi possível mostrar a prévia: %v\n", err)
		return
	}
	export.RenderPreview(s.out, preview)
}
