package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/reflowlabs/reflow/pkg/application/services"
	"github.com/reflowlabs/reflow/pkg/infrastructure/events"
	"github.com/reflowlabs/reflow/pkg/infrastructure/repositories/csv"
	"github.com/reflowlabs/reflow/pkg/infrastructure/repositories/memory"
	"github.com/reflowlabs/reflow/pkg/reflow"
)

// scenarioFlags are the input-file flags shared by every subcommand that
// loads a scenario. A scenario is either a directory with the
// conventional filenames, or four individually-specified CSV files.
type scenarioFlags struct {
	ScenarioDir     string
	WorkOrdersFile  string
	WorkCentersFile string
	ShiftsFile      string
	MaintenanceFile string
	AllowEarlyStart bool
	Timezone        string
	Now             string
}

// register attaches scenario flags to cmd.
func (f *scenarioFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.ScenarioDir, "scenario", "", "path to a directory containing work_orders.csv, work_centers.csv, shifts.csv, and maintenance_windows.csv")
	cmd.Flags().StringVar(&f.WorkOrdersFile, "work-orders-file", "", "path to a work orders CSV file")
	cmd.Flags().StringVar(&f.WorkCentersFile, "work-centers-file", "", "path to a work centers CSV file")
	cmd.Flags().StringVar(&f.ShiftsFile, "shifts-file", "", "path to a shifts CSV file")
	cmd.Flags().StringVar(&f.MaintenanceFile, "maintenance-file", "", "path to a maintenance windows CSV file (optional)")
	cmd.Flags().StringVar(&f.Timezone, "timezone", "UTC", "IANA timezone used to evaluate shift windows")
	cmd.Flags().StringVar(&f.Now, "now", "", "RFC3339 timestamp used as 'now' when --allow-earlier-start is set")
	cmd.Flags().BoolVar(&f.AllowEarlyStart, "allow-earlier-start", false, "allow orders with no dependency or machine history to start earlier than their original start")
}

func (f *scenarioFlags) resolvePaths() (workOrders, workCenters, shifts, maintenance string, err error) {
	if f.ScenarioDir != "" {
		workOrders = filepath.Join(f.ScenarioDir, "work_orders.csv")
		workCenters = filepath.Join(f.ScenarioDir, "work_centers.csv")
		shifts = filepath.Join(f.ScenarioDir, "shifts.csv")
		maintenance = filepath.Join(f.ScenarioDir, "maintenance_windows.csv")
	} else {
		workOrders = f.WorkOrdersFile
		workCenters = f.WorkCentersFile
		shifts = f.ShiftsFile
		maintenance = f.MaintenanceFile
	}

	for name, path := range map[string]string{
		"work orders":  workOrders,
		"work centers": workCenters,
		"shifts":       shifts,
	} {
		if path == "" {
			return "", "", "", "", fmt.Errorf("missing required input: %s (use --scenario or the individual --*-file flags)", name)
		}
		if _, statErr := os.Stat(path); os.IsNotExist(statErr) {
			return "", "", "", "", fmt.Errorf("%s file not found: %s", name, path)
		}
	}

	return workOrders, workCenters, shifts, maintenance, nil
}

// loadScenario loads a scenario's CSV files into a ReflowService backed by
// in-memory repositories, and returns the reflow.Config to run it with.
func loadScenario(f *scenarioFlags) (*services.ReflowService, reflow.Config, error) {
	workOrdersPath, workCentersPath, shiftsPath, maintenancePath, err := f.resolvePaths()
	if err != nil {
		return nil, reflow.Config{}, err
	}

	loader := csv.NewLoader()

	orders, err := loader.LoadWorkOrders(workOrdersPath)
	if err != nil {
		return nil, reflow.Config{}, fmt.Errorf("loading work orders: %w", err)
	}

	centers, err := loader.LoadWorkCenters(workCentersPath)
	if err != nil {
		return nil, reflow.Config{}, fmt.Errorf("loading work centers: %w", err)
	}

	if err := loader.LoadShifts(shiftsPath, centers); err != nil {
		return nil, reflow.Config{}, fmt.Errorf("loading shifts: %w", err)
	}

	if maintenancePath != "" {
		if _, statErr := os.Stat(maintenancePath); statErr == nil {
			if err := loader.LoadMaintenanceWindows(maintenancePath, centers); err != nil {
				return nil, reflow.Config{}, fmt.Errorf("loading maintenance windows: %w", err)
			}
		}
	}

	workOrderRepo := memory.NewWorkOrderRepository(len(orders))
	if err := workOrderRepo.LoadWorkOrders(orders); err != nil {
		return nil, reflow.Config{}, fmt.Errorf("loading work orders into repository: %w", err)
	}

	workCenterRepo := memory.NewWorkCenterRepository(len(centers))
	if err := workCenterRepo.LoadWorkCenters(centers); err != nil {
		return nil, reflow.Config{}, fmt.Errorf("loading work centers into repository: %w", err)
	}

	store := events.NewInMemoryEventStore()
	observer := services.NewSlogReflowObserver(os.Stderr)
	service := services.NewReflowService(workOrderRepo, workCenterRepo, store, observer)

	cfg := reflow.Config{
		AllowEarlierStart: f.AllowEarlyStart,
		Timezone:          f.Timezone,
	}
	if f.Now != "" {
		now, err := time.Parse(time.RFC3339, f.Now)
		if err != nil {
			return nil, reflow.Config{}, fmt.Errorf("invalid --now: %s (expected RFC3339)", f.Now)
		}
		cfg.Now = now
	}

	return service, cfg, nil
}
