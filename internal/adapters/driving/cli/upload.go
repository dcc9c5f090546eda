package cli

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/docuflow-cli/internal/core/domain"
	"github.com/custodia-labs/docuflow-cli/internal/core/services"
)

var uploadType string

var uploadCmd = &cobra.Command{
	Use:   "upload [file]",
	Short: "Upload a PDF invoice or contract",
	Long: `Upload a PDF to the DocuFlow backend for extraction.

The file is checked locally first: it must exist, be a PDF and be
10 MB or smaller.`,
	Args: cobra.ExactArgs(1),
	RunE: runUpload,
}

var uploadWatchCmd = &cobra.Command{
	Use:   "watch [dir]",
	Short: "Upload every PDF that appears in a folder",
	Long: `Watch a folder and upload each PDF that is created or written in it.
Hidden files are ignored. Press Ctrl+C to stop.`,
	Args: cobra.ExactArgs(1),
	RunE: runUploadWatch,
}

func init() {
	uploadCmd.PersistentFlags().StringVarP(&uploadType, "type", "t", string(domain.DocumentTypeInvoice), "document type: invoice or contract")
	uploadCmd.AddCommand(uploadWatchCmd)
	rootCmd.AddCommand(uploadCmd)
}

func runUpload(cmd *cobra.Command, args []string) error {
	if uploadService == nil {
		return errors.New("upload service not configured")
	}

	req := domain.UploadRequest{Path: args[0], DocumentType: domain.DocumentType(uploadType)}
	if err := uploadService.Validate(req); err != nil {
		return err
	}

	var result *domain.UploadResult
	label := "Uploading " + filepath.Base(req.Path)
	err := withProgress(cmd, services.UploadProgress(), label, func() error {
		var err error
		result, err = uploadService.Upload(commandContext(cmd), req)
		return err
	})
	if err != nil {
		return fmt.Errorf("upload failed: %w", err)
	}

	printUploadResult(cmd, req.Path, result)
	return nil
}

func printUploadResult(cmd *cobra.Command, path string, result *domain.UploadResult) {
	msg := "Document uploaded successfully"
	if result != nil && result.Message != "" {
		msg = result.Message
	}
	cmd.Printf("✓ %s: %s\n", filepath.Base(path), msg)
}

func runUploadWatch(cmd *cobra.Command, args []string) error {
	if uploadService == nil {
		return errors.New("upload service not configured")
	}

	ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt)
	defer stop()

	dir := args[0]
	cmd.Printf("Watching %s for %s PDFs (Ctrl+C to stop)\n", dir, uploadType)
	return uploadService.Watch(ctx, dir, domain.DocumentType(uploadType), func(path string, result *domain.UploadResult, err error) {
		if err != nil {
			cmd.PrintErrf("✗ %s: %v\n", filepath.Base(path), err)
			return
		}
		printUploadResult(cmd, path, result)
	})
}
