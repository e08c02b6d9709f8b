package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/multierr"
)

const projectName = "deeprey-radar"
const projectVersion = "v0.3.0"

var stayAlive stayAliveStruct

func getAboutStr() string {
	return fmt.Sprint(projectName, " ", projectVersion, " - control Navico BR24/3G/4G radar scanners over the network")
}

func openSession(ctx context.Context, cfg *radarConfig, history *txHistory) (*navicoControl, error) {
	if cfg.emulator {
		log.Print("emulator mode, nothing will be sent to ", cfg.destination)
		return newNavicoControl(cfg.name, &emulatorSender{dest: cfg.destination.String(), log: &log}, &log, history), nil
	}
	return openNavicoControl(ctx, cfg.name, cfg.local, cfg.destination, cfg.sendTimeout, &log, history)
}

// startRadar brings up the status bar first so the configured controls
// applied right after show up on it.
func startRadar(cfg *radarConfig, ctrl *navicoControl, history *txHistory, quiet bool) *radarStateStruct {
	statusLog.startPeriodicPrint(cfg.name, ctrl.sender.destination(), history, statusLogInterval, quiet)

	state := newRadarState(ctrl, cfg.units)
	if err := state.applyControls(cfg.controls); err != nil {
		log.Error("some controls were not applied: ", err)
	}
	return state
}

func shutdown(cfg *radarConfig, state *radarStateStruct) (err error) {
	stayAlive.deinit()
	statusLog.stopPeriodicPrint()
	keyboard.deinit()

	if cfg.txOffOnExit && state.isTransmitting() {
		err = multierr.Append(err, state.setTransmit(false))
	}
	return multierr.Append(err, state.ctrl.close())
}

func main() {
	parseArgs()

	var levels logLevel
	if verboseLog {
		levels |= logLevelVerbose
	}
	if transmitLog {
		levels |= logLevelTransmit
	}
	log.init(debugLog, quietLog, levels)
	defer log.sync()

	log.Print(getAboutStr())

	cfg, err := loadConfig(configFile)
	if err != nil {
		log.Fatal(err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	history := newTxHistory()
	ctrl, err := openSession(ctx, cfg, history)
	if err != nil {
		log.Fatal(err)
	}
	log.Print("sending commands to ", cfg.name, " at ", ctrl.sender.destination())

	state := startRadar(cfg, ctrl, history, quietLog)

	quit := make(chan bool, 1)
	keyboard.attach(state, quit)

	stayAlive.init(state, cfg.stayAlive)
	stayAlive.trigger()

	if cfg.txOnStart {
		if err := state.setTransmit(true); err != nil {
			log.Error("can't start transmitting: ", err)
		}
	}

	select {
	case <-ctx.Done():
	case <-quit:
	}
	log.Print("disconnecting")

	if err := shutdown(cfg, state); err != nil {
		log.Error("shutdown: ", err)
		log.sync()
		os.Exit(1)
	}
}
