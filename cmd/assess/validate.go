// cmd/assess/validate.go
package main

import (
	"infraiq-workers/internal/common/validation"

	"github.com/spf13/cobra"
)

func newValidateCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check a response against the assessment JSON schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := readDocument(opts.file, cmd.InOrStdin())
			if err != nil {
				return err
			}
			validator, err := validation.NewAssessmentValidator()
			if err != nil {
				return err
			}

			result := validator.Validate(doc)
			opts.logger().Debug("validated document", map[string]interface{}{
				"file":   opts.file,
				"valid":  result.Valid,
				"errors": len(result.Errors),
			})
			if err := writeOutput(cmd.OutOrStdout(), result, opts.pretty); err != nil {
				return err
			}
			if !result.Valid {
				return errInvalid
			}
			return nil
		},
	}
}
