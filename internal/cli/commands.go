package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/dmitrijs2005/factorg/internal/client"
	"github.com/dmitrijs2005/factorg/internal/filex"
	"github.com/dmitrijs2005/factorg/internal/guard"
	"github.com/dmitrijs2005/factorg/internal/models"
	"github.com/dmitrijs2005/factorg/internal/services"
)

// listArgs splits "[page] [key=value...]" arguments.
func listArgs(args []string) (page int, filters map[string]string, err error) {
	page = 1
	filters = make(map[string]string)
	for _, arg := range args {
		if k, v, ok := strings.Cut(arg, "="); ok {
			filters[strings.ToLower(k)] = v
			continue
		}
		n, convErr := strconv.Atoi(arg)
		if convErr != nil || n < 1 {
			return 0, nil, fmt.Errorf("argumento inválido: %q", arg)
		}
		page = n
	}
	return page, filters, nil
}

// Products prints one page of products.
func (a *App) Products(ctx context.Context, args []string) error {
	if err := a.allowed(guard.FeatureTables); err != nil {
		return err
	}
	page, f, err := listArgs(args)
	if err != nil {
		return err
	}
	filter := models.ProductFilter{
		Name:        f["nombre"],
		Code:        f["codigo"],
		Folio:       f["folio"],
		AdminCodeID: f["cod_admin"],
		From:        f["desde"],
		To:          f["hasta"],
	}

	list, err := a.products.List(a.withCreds(ctx), filter, page)
	if err != nil {
		return a.failure(ctx, err, "No se pudieron cargar los productos.")
	}

	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tCÓDIGO\tNOMBRE\tFOLIO\tPRECIO UNIT.\tCOSTO UNIT.\tCOD. ADMIN")
	for _, p := range list.Products {
		admin := "-"
		if p.AdminCode != nil {
			admin = p.AdminCode.Code
		}
		name := p.Name
		if p.CreditNote {
			name += " (NC)"
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n",
			p.ID, p.Code, name, deref(p.Folio),
			models.FormatCLPPtr(p.UnitPrice), models.FormatCLPPtr(p.UnitCost), admin)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	pg := list.Pager
	fmt.Fprintf(a.out, "Página %d de %d (%d productos)\n", pg.Page, pg.LastPage, pg.Total)
	return nil
}

// Invoices prints one page of invoices.
func (a *App) Invoices(ctx context.Context, args []string) error {
	if err := a.allowed(guard.FeatureTables); err != nil {
		return err
	}
	page, f, err := listArgs(args)
	if err != nil {
		return err
	}
	filter := models.InvoiceFilter{
		SupplierRUT: f["rut"],
		Folio:       f["folio"],
		From:        f["desde"],
		To:          f["hasta"],
	}

	list, err := a.invoices.List(a.withCreds(ctx), filter, page)
	if err != nil {
		return a.failure(ctx, err, "No se pudieron cargar las facturas.")
	}
	if list.Notice != "" {
		fmt.Fprintln(a.out, list.Notice)
	}

	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tFOLIO\tEMISIÓN\tPROVEEDOR\tNEGOCIO\tTOTAL")
	for _, inv := range list.Invoices {
		business := inv.BusinessName()
		if business == "" {
			business = "-"
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\n",
			inv.ID, inv.Folio, inv.IssuedOn, inv.Supplier.Name, business, models.FormatCLP(inv.Total))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	more := ""
	if list.Cursor.HasNext() {
		more = fmt.Sprintf(", siguiente: facturas %d", list.Cursor.Page+1)
	}
	fmt.Fprintf(a.out, "Página %d%s\n", list.Cursor.Page, more)
	return nil
}

// Upload sends every XML file named by args (directories are expanded),
// one after another, and prints each outcome.
func (a *App) Upload(ctx context.Context, args []string) error {
	if err := a.allowed(guard.FeatureUpload); err != nil {
		return err
	}
	if len(args) == 0 {
		return errors.New("uso: subir <archivo|carpeta>...")
	}

	paths, err := filex.CollectXML(args)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		return errors.New("no se encontraron archivos .xml")
	}

	files := make(map[string][]byte, len(paths))
	for _, p := range paths {
		content, err := os.ReadFile(p)
		if err != nil {
			return fmt.Errorf("leer %s: %w", p, err)
		}
		files[p] = content
	}

	results := a.uploads.UploadMany(a.withCreds(ctx), files, paths)

	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
			if errors.Is(r.Err, client.ErrUnauthorized) {
				a.dropSession(ctx)
			}
			fmt.Fprintf(a.out, "ERROR  %s: %s\n", r.Filename, services.Message(r.Err, "Error al subir el archivo."))
			continue
		}
		fmt.Fprintf(a.out, "OK     %s: %s\n", r.Filename, r.Message)
	}
	fmt.Fprintf(a.out, "%d subidos, %d con error.\n", len(results)-failed, failed)

	if !a.isLoggedIn() {
		return errors.New(msgSessionExpired)
	}
	return nil
}

// Export downloads a spreadsheet to dest (the export's file name in the
// current directory by default).
func (a *App) Export(ctx context.Context, args []string) error {
	if err := a.allowed(guard.FeatureDashboard); err != nil {
		return err
	}
	if len(args) == 0 {
		return errors.New("uso: exportar <productos|facturas> [destino]")
	}
	kind := client.ExportKind(strings.ToLower(args[0]))
	if !kind.Valid() {
		return fmt.Errorf("exportación desconocida: %s", args[0])
	}
	dest := kind.Filename()
	if len(args) > 1 {
		dest = args[1]
	}

	d, err := a.dashboard.Export(a.withCreds(ctx), kind)
	if err != nil {
		return a.failure(ctx, err, "No se pudo generar el archivo.")
	}
	defer d.Body.Close()

	n, err := writeFile(dest, d.Body)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Guardado %s (%d bytes).\n", dest, n)
	return nil
}

// writeFile streams r into path through a temporary sibling, so a failed
// download never leaves a truncated file behind.
func writeFile(path string, r io.Reader) (int64, error) {
	if err := filex.EnsureParentDir(path); err != nil {
		return 0, err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return 0, err
	}
	defer os.Remove(tmp.Name())

	n, err := io.Copy(tmp, r)
	if err != nil {
		_ = tmp.Close()
		return 0, fmt.Errorf("descarga interrumpida: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return 0, err
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return 0, err
	}
	return n, nil
}

func deref(s *string) string {
	if s == nil || *s == "" {
		return "-"
	}
	return *s
}
